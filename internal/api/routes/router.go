package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/linskybing/formify-go/docs"
	"github.com/linskybing/formify-go/internal/api/handlers"
	"github.com/linskybing/formify-go/internal/api/middleware"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/repository"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services, repos *repository.Repos) *handlers.Handlers {
	h := handlers.New(svc)
	authMiddleware := middleware.NewAuth(repos)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", h.User.Register)
	r.POST("/auth/login", h.User.Login)
	r.POST("/auth/logout", middleware.OptionalAuth(), h.User.Logout)
	r.GET("/auth/status", middleware.JWTAuthMiddleware(), h.User.AuthStatus)
	r.GET("/builder/palette", h.Builder.Palette)

	// Share links and embeds.
	public := r.Group("/")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("/forms/:id", h.Public.ShowForm)
		public.POST("/forms/:id", h.Public.SubmitForm)
		public.GET("/api/public/forms/:id", h.Public.GetPublicForm)
		public.POST("/api/public/forms/:id/submissions", h.Public.CreateSubmission)
	}

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/builder/:sid", h.Builder.StreamSession)
		auth.GET("/stats", h.Admin.MyStats)
		auth.POST("/chat", h.Assistant.Chat)
		auth.POST("/sheets", h.Submission.CreateSpreadsheet)

		forms := auth.Group("/forms")
		{
			forms.GET("", h.Form.GetMyForms)
			forms.POST("", h.Form.CreateForm)
			forms.POST("/generate", h.Assistant.GenerateForm)
			forms.GET("/:id/schema", h.Form.GetForm)
			forms.PUT("/:id", h.Form.UpdateForm)
			forms.DELETE("/:id", h.Form.DeleteForm)
			forms.POST("/:id/publish", h.Form.PublishForm)
			forms.POST("/:id/unpublish", h.Form.UnpublishForm)
			forms.GET("/:id/history", h.Form.FormHistory)

			forms.GET("/:id/submissions", h.Submission.ListSubmissions)
			forms.GET("/:id/submissions/export", h.Submission.ExportSubmissions)
			forms.POST("/:id/submissions/archive", h.Submission.ArchiveSubmissions)
			forms.POST("/:id/submissions/sheets", h.Submission.ExportToSheets)

			forms.GET("/:id/integrations", h.Integration.ListIntegrations)
			forms.POST("/:id/integrations", h.Integration.CreateIntegration)
			forms.PUT("/:id/integrations/:iid", h.Integration.UpdateIntegration)
			forms.DELETE("/:id/integrations/:iid", h.Integration.DeleteIntegration)
			forms.POST("/:id/integrations/:iid/test", h.Integration.TestIntegration)
		}

		BuilderRoutes(auth, h.Builder)

		admin := auth.Group("/admin")
		admin.Use(authMiddleware.Admin())
		{
			admin.GET("/users", h.User.ListUsers)
			admin.PUT("/users/:id/role", h.User.UpdateRole)
			admin.GET("/forms", h.Form.GetAllForms)
			admin.GET("/stats", h.Admin.Stats)
			admin.GET("/audit/logs", h.Admin.GetAuditLogs)
		}
	}
	return h
}
