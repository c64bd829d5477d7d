package app

import (
	"silabo_backend/docs"
	"silabo_backend/internal/config"
	"silabo_backend/internal/middleware"
	"silabo_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// AI代理端点：密钥在服务端，端点本身需要登录
	ai := router.Group("/api/ai")
	ai.Use(middleware.AuthMiddleware(cfg))
	{
		ai.POST("/deepseek-analysis", c.ai.DeepSeekAnalysis)
		ai.POST("/generate-ppt-code", c.ai.GeneratePPTCode)
		ai.POST("/perplexity-research", c.ai.PerplexityResearch)
		ai.GET("/test-deepseek", c.ai.TestDeepSeek)
	}

	// 课程流水线
	cursos := router.Group("/api/cursos")
	cursos.Use(middleware.AuthMiddleware(cfg))
	{
		cursos.POST("", c.course.Create)
		cursos.GET("", c.course.List)
		cursos.GET("/:id", c.course.Get)
		cursos.DELETE("/:id", c.course.Delete)
		cursos.GET("/:id/archivo", c.course.Download)

		cursos.GET("/:id/revision", c.review.Get)
		cursos.POST("/:id/revision/extract", c.review.Extract)
		cursos.POST("/:id/revision/critique", c.review.Critique)
		cursos.POST("/:id/revision/decide", c.review.Decide)
		cursos.GET("/:id/sesiones", c.review.Sessions)

		cursos.POST("/:id/investigacion", c.research.Generate)
		cursos.GET("/:id/investigacion", c.research.List)
		cursos.GET("/:id/investigacion/:n", c.research.Get)
		cursos.DELETE("/:id/investigacion/:n", c.research.Delete)

		cursos.POST("/:id/comparacion/:n/documentos/:slot", c.comparison.UploadDocument)
		cursos.POST("/:id/comparacion/:n/comparar", c.comparison.Compare)
		cursos.GET("/:id/comparacion/:n", c.comparison.Get)

		cursos.GET("/:id/actividades", c.activity.List)
		cursos.POST("/:id/actividades/:n", c.activity.Generate)
		cursos.GET("/:id/actividades/:n", c.activity.Get)
		cursos.GET("/:id/actividades/:n/html", c.activity.RenderHTML)

		cursos.GET("/:id/estructuras", c.slide.List)
		cursos.POST("/:id/estructuras/:n", c.slide.Generate)
		cursos.GET("/:id/estructuras/:n", c.slide.Get)
		cursos.POST("/:id/estructuras/:n/validar", c.slide.Validate)
		cursos.POST("/:id/estructuras/:n/guardar", c.slide.Save)

		cursos.POST("/:id/revisor", c.reviewer.Save)
		cursos.GET("/:id/revisor", c.reviewer.Get)
	}
}
