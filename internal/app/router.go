package app

import (
	"crackit_backend/docs"
	"crackit_backend/internal/config"
	"crackit_backend/internal/middleware"
	"crackit_backend/internal/model"
	"crackit_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Study material is readable without an account.
		public.GET("/syllabus", c.content.ListSyllabi)
		public.GET("/previous-papers", c.content.ListPapers)
		public.GET("/keywords", c.content.ListKeywords)
		public.GET("/interview-questions", c.content.ListInterviewQuestions)
		public.GET("/interview-questions/departments", c.content.ListDepartments)
		public.GET("/formulas", c.content.ListFormulas)

		public.GET("/mock-tests", c.mockTest.ListTests)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.Profile)

	group.GET("/mock-tests/:id/questions", c.mockTest.GetQuestions)
	group.POST("/mock-tests/:id/submit", c.mockTest.Submit)
	group.GET("/attempts", c.mockTest.ListAttempts)
	group.GET("/attempts/:id", c.mockTest.AttemptDetail)

	group.GET("/daily-quiz", c.dailyQuiz.GetQuiz)
	group.POST("/daily-quiz/submit", c.dailyQuiz.Submit)
	group.GET("/daily-quiz/attempts", c.dailyQuiz.ListAttempts)
	group.GET("/daily-quiz/attempts/:id", c.dailyQuiz.AttemptDetail)

	group.POST("/chat", c.chat.Ask)
	group.POST("/chat/stream", c.chat.AskStream)
	group.GET("/chat/history", c.chat.History)
	group.POST("/chat/history", c.chat.SaveHistory)
	group.DELETE("/chat/history/:id", c.chat.Delete)
	group.GET("/chat/:id", c.chat.Conversation)
	group.DELETE("/chat/:id", c.chat.Delete)
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/syllabus", c.content.CreateSyllabus)
		admin.PUT("/syllabus/:id", c.content.UpdateSyllabus)
		admin.DELETE("/syllabus/:id", c.content.DeleteSyllabus)

		admin.POST("/previous-papers", c.content.CreatePaper)
		admin.DELETE("/previous-papers/:id", c.content.DeletePaper)

		admin.POST("/keywords", c.content.CreateKeyword)
		admin.DELETE("/keywords/:id", c.content.DeleteKeyword)

		admin.POST("/interview-questions", c.content.CreateInterviewQuestion)
		admin.DELETE("/interview-questions/:id", c.content.DeleteInterviewQuestion)

		admin.POST("/formulas", c.content.CreateFormula)
		admin.DELETE("/formulas/:id", c.content.DeleteFormula)

		admin.POST("/mock-tests", c.mockTest.CreateTest)
		admin.GET("/mock-tests/:id", c.mockTest.GetTest)
		admin.DELETE("/mock-tests/:id", c.mockTest.DeleteTest)
		admin.POST("/mock-tests/:id/questions", c.mockTest.AddQuestion)
		admin.DELETE("/questions/:id", c.mockTest.DeleteQuestion)

		admin.POST("/daily-quiz", c.dailyQuiz.CreateQuestion)
		admin.GET("/daily-quiz", c.dailyQuiz.ListScheduled)
		admin.DELETE("/daily-quiz/:id", c.dailyQuiz.DeleteQuestion)
	}
}
