package routes

import (
	"guidehub_backend/internal/handlers"
	"guidehub_backend/internal/middleware"
	"guidehub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full HTTP API v1 surface.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	api := router.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/verify-email", h.Auth.VerifyEmail)
	}

	guides := api.Group("/guides")
	guides.Use(middleware.OptionalAuthMiddleware())
	{
		guides.GET("", h.Guide.List)
		guides.GET("/:slug", h.Guide.GetBySlug)
	}
	// Comments and ratings key guides by id, kept apart from the slug reads
	// to avoid wildcard conflicts.
	guideContent := api.Group("/guide")
	{
		guideContent.GET("/:id/comments", h.Comment.List)

		authed := guideContent.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/:id/comments", h.Comment.Create)
			authed.DELETE("/:id/comments/:commentId", h.Comment.Delete)
			authed.POST("/:id/rating", h.Comment.Rate)
		}
	}

	api.GET("/premium/features", h.Premium.Features)
	api.GET("/announcements", h.Announcement.ListActive)

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", h.Newsletter.Subscribe)
		newsletter.GET("/unsubscribe", h.Newsletter.Unsubscribe)
	}

	// Authenticated
	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.User.GetMe)
		users.PUT("/me", h.User.UpdateMe)
		users.POST("/me/password", h.User.ChangePassword)
	}

	premium := api.Group("/premium")
	premium.Use(middleware.AuthMiddleware())
	{
		premium.POST("/confirm-manual-payment", h.Premium.ConfirmManualPayment)
		premium.POST("/upload-screenshot", h.Premium.UploadScreenshot)
		premium.POST("/cancel", h.Premium.Cancel)
		premium.GET("/status", h.Premium.Status)
	}

	notifications := api.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/users", h.Admin.ListUsers)

		admin.GET("/subscriptions", h.Admin.ListSubscriptions)
		admin.GET("/subscriptions/export.xlsx", h.Admin.ExportSubscriptions)
		admin.PUT("/subscriptions/:id/status", h.Admin.DecideSubscription)

		admin.POST("/guides", h.Guide.Create)
		admin.PUT("/guides/:id", h.Guide.Update)
		admin.DELETE("/guides/:id", h.Guide.Delete)

		admin.GET("/settings", h.Admin.ListSettings)
		admin.PUT("/settings/:name", h.Admin.UpdateSetting)

		admin.GET("/announcements", h.Announcement.ListAll)
		admin.POST("/announcements", h.Announcement.Create)
		admin.PUT("/announcements/:id", h.Announcement.Update)
		admin.DELETE("/announcements/:id", h.Announcement.Delete)

		admin.POST("/newsletter/send", h.Newsletter.Send)
		admin.GET("/stats", h.Admin.Stats)
	}
}
