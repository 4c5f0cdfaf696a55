package controller

import (
	"errors"

	"quizlink_backend/internal/service"
	"quizlink_backend/internal/util"
	"quizlink_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// RespondentController 答题端：打开测验、提交答案。无需登录。
type RespondentController struct {
	QuizSvc   *service.QuizService
	ResultSvc *service.ResultService
}

func NewRespondentController(quizSvc *service.QuizService, resultSvc *service.ResultService) *RespondentController {
	return &RespondentController{QuizSvc: quizSvc, ResultSvc: resultSvc}
}

// @Summary 打开测验
// @Description 按分享令牌获取题目，不返回正确答案，过期链接返回 410
// @Tags 答题
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *RespondentController) GetQuiz(ctx *gin.Context) {
	id := ctx.Param("id")

	view, err := c.QuizSvc.GetQuizForRespondent(id)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 提交答卷
// @Description 自动评分并追加结果行，返回逐题得分与总分
// @Tags 答题
// @Accept json
// @Produce json
// @Param id path string true "测验ID"
// @Param body body service.SubmissionReq true "姓名与答案"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /api/quizzes/{id}/submissions [post]
func (c *RespondentController) Submit(ctx *gin.Context) {
	id := ctx.Param("id")

	var req service.SubmissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ResultSvc.Submit(id, req)
	if err != nil {
		if errors.Is(err, util.ErrNameRequired) {
			util.BadRequest(ctx, err.Error())
			return
		}
		respondQuizError(ctx, err)
		return
	}

	monitoring.SubmissionCounter.WithLabelValues(id).Inc()
	util.Created(ctx, result)
}

func respondQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrQuizExpired):
		util.Gone(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
