package routes

import (
	"unimatch_backend/internal/handlers"
	"unimatch_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface under /api/v1.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	api := r.Group("/api/v1")

	// Public
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.GET("/activate", h.Auth.Activate)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	api.GET("/files/*path", h.File.Serve)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/auth/logout", h.Auth.Logout)

		authed.POST("/profile", h.Profile.Create)
		authed.GET("/profile", h.Profile.Get)
		authed.PUT("/profile", h.Profile.Update)

		authed.POST("/verification", h.Verification.Submit)
		authed.GET("/verification", h.Verification.GetStatus)

		authed.GET("/matches", h.Match.List)

		authed.GET("/chats", h.Chat.ListConversations)
		authed.GET("/chats/:id/messages", h.Chat.GetMessages)
		authed.POST("/chats/:id/messages", h.Chat.SendMessage)
		authed.POST("/chats/:id/read", h.Chat.MarkRead)
		authed.DELETE("/chats/messages/:id", h.Chat.DeleteMessage)

		authed.POST("/blocks", h.Moderation.Block)
		authed.POST("/reports", h.Moderation.Report)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/verifications", h.Admin.ListVerifications)
		admin.POST("/verifications/:id/review", h.Admin.ReviewVerification)
		admin.GET("/reports", h.Admin.ListReports)
		admin.POST("/reports/:id/resolve", h.Admin.ResolveReport)
		admin.PUT("/users/:id/status", h.Admin.UpdateUserStatus)
	}
}
