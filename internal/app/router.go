package app

import (
	"quizlink_backend/docs"
	"quizlink_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 答题端：仅凭分享链接中的测验 ID 访问，无需登录
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/quizzes/:id", c.respondent.GetQuiz)
		public.POST("/quizzes/:id/submissions", c.respondent.Submit)
	}

	// 管理端：创建测验、查看与导出成绩
	admin := router.Group("/api/admin")
	{
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.GET("/quizzes", c.quiz.ListQuizzes)
		admin.GET("/quizzes/:id", c.quiz.GetQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.GET("/quizzes/:id/results", c.result.ListResults)
		admin.GET("/quizzes/:id/results/export", c.result.ExportResults)
	}
}
