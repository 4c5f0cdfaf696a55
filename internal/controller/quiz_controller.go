package controller

import (
	"errors"
	"strconv"

	"quizlink_backend/internal/quizbank"
	"quizlink_backend/internal/service"
	"quizlink_backend/internal/util"
	"quizlink_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 上传题库并发布测验
// @Description 上传 CSV/Excel 题库文件，校验通过后生成分享令牌
// @Tags 测验管理
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "题库文件 (csv/xls/xlsx)"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "question file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	quiz, warnings, err := c.Service.CreateQuiz(fileHeader.Filename, f)
	if err != nil {
		var schemaErr *quizbank.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			util.BadRequest(ctx, schemaErr.Error())
		case errors.Is(err, quizbank.ErrEmptyTable),
			errors.Is(err, util.ErrEmptyUpload),
			errors.Is(err, util.ErrUploadTooLarge):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizCreatedCounter.Inc()

	warningMessages := make([]string, 0, len(warnings))
	for _, w := range warnings {
		warningMessages = append(warningMessages, "row "+strconv.Itoa(w.Row)+": "+w.Message)
	}

	util.Created(ctx, gin.H{
		"quiz":      quiz,
		"shareUrl":  "/api/quizzes/" + quiz.ID,
		"expiresAt": c.Service.ExpiresAt(quiz),
		"warnings":  warningMessages,
	})
}

// @Summary 测验列表
// @Tags 测验管理
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	quizzes, total, err := c.Service.ListQuizzes(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 测验详情（含正确答案）
// @Tags 测验管理
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id := ctx.Param("id")

	quiz, questions, err := c.Service.GetQuizAdmin(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"quiz": quiz, "questions": questions})
}

// @Summary 删除测验及其全部答卷
// @Tags 测验管理
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.Service.DeleteQuiz(id); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
