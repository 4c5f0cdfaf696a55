package controller

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"quizlink_backend/internal/service"
	"quizlink_backend/internal/util"
	"quizlink_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary 查看测验结果
// @Tags 测验管理
// @Produce json
// @Param id path string true "测验ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	id := ctx.Param("id")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	rows, total, err := c.Service.ListResults(id, page, limit)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 下载结果 CSV
// @Tags 测验管理
// @Produce text/csv
// @Param id path string true "测验ID"
// @Success 200 {string} string "CSV 文件"
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id}/results/export [get]
func (c *ResultController) ExportResults(ctx *gin.Context) {
	id := ctx.Param("id")

	records, filename, err := c.Service.ExportCSV(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) || errors.Is(err, util.ErrNoResults) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Status(http.StatusOK)

	w := csv.NewWriter(ctx.Writer)
	if err := w.WriteAll(records); err != nil {
		// 响应头已发出，只能记录
		logger.Log.Error("failed to stream results csv", zap.String("quiz_id", id), zap.Error(err))
	}
}
