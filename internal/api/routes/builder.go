package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/api/handlers"
)

// BuilderRoutes registers editing session endpoints
func BuilderRoutes(rg *gin.RouterGroup, h *handlers.BuilderHandler) {
	sessions := rg.Group("/builder/sessions")
	{
		sessions.POST("", h.OpenSession)
		sessions.GET("/:sid", h.GetSession)
		sessions.DELETE("/:sid", h.CloseSession)
		sessions.GET("/:sid/sync", h.SyncStatus)

		sessions.PUT("/:sid/header", h.UpdateHeader)
		sessions.PUT("/:sid/selection", h.SelectElement)
		sessions.POST("/:sid/elements", h.InsertElement)
		sessions.PUT("/:sid/elements/order", h.ReorderElements)
		sessions.PATCH("/:sid/elements/:eid", h.UpdateElement)
		sessions.DELETE("/:sid/elements/:eid", h.RemoveElement)
		sessions.POST("/:sid/elements/:eid/options", h.AddOption)
		sessions.PUT("/:sid/elements/:eid/options/:index", h.UpdateOption)
		sessions.DELETE("/:sid/elements/:eid/options/:index", h.RemoveOption)

		sessions.POST("/:sid/save", h.Save)
		sessions.POST("/:sid/publish", h.Publish)
		sessions.POST("/:sid/unpublish", h.Unpublish)

		sessions.GET("/:sid/preview", h.GetPreview)
		sessions.PUT("/:sid/preview/values/:eid", h.SetPreviewValue)
		sessions.POST("/:sid/preview/submit", h.SubmitPreview)
		sessions.DELETE("/:sid/preview", h.ResetPreview)
	}
}
