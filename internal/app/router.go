package app

import (
	"career_compass_backend/docs"
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/middleware"
	"career_compass_backend/internal/model"
	"career_compass_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/refresh", c.auth.Refresh)
		}
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/users/profile", c.user.GetProfile)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)

		authGroup.GET("/onboarding", c.onboarding.Get)
		authGroup.PUT("/onboarding", c.onboarding.Upsert)
		authGroup.GET("/onboarding/completeness", c.onboarding.Completeness)

		quiz := authGroup.Group("/quiz")
		{
			quiz.GET("/questions", c.quiz.GetQuestions)
			quiz.POST("/answers", c.quiz.SaveAnswer)
			quiz.GET("/answers", c.quiz.GetAnswers)
			quiz.GET("/progress", c.quiz.GetProgress)
			quiz.GET("/submission", c.quiz.GetSubmission)
			quiz.POST("/submit", c.quiz.Submit)
		}

		careers := authGroup.Group("/careers")
		{
			careers.POST("/generate", c.career.Generate)
			careers.GET("", c.career.List)
			careers.GET("/:id", c.career.Detail)
			careers.GET("/:id/skill-gaps", c.career.SkillGaps)
			careers.GET("/:id/roadmap", c.career.Roadmap)
		}

		materials := authGroup.Group("/materials")
		{
			materials.GET("", c.material.List)
			materials.GET("/:id", c.material.Get)
		}
	}

	// 管理员相关接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.GET("/users", c.admin.ListUsers)
		adminGroup.PUT("/users/:id/active", c.admin.SetUserActive)
		adminGroup.GET("/analytics", c.admin.Analytics)

		adminGroup.GET("/quiz/questions", c.quiz.ListAllQuestions)
		adminGroup.POST("/quiz/questions", c.quiz.CreateQuestion)
		adminGroup.PUT("/quiz/questions/:id", c.quiz.UpdateQuestion)
		adminGroup.DELETE("/quiz/questions/:id", c.quiz.DeactivateQuestion)

		adminGroup.POST("/materials", c.material.Create)
		adminGroup.PUT("/materials/:id", c.material.Update)
		adminGroup.DELETE("/materials/:id", c.material.Deactivate)
	}
}
