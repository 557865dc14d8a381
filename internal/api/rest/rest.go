package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/property-registry/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/registry", handler.GetRegistryInfo)
		v1.PUT("/registry/registrar", middleware.JWTAuth(authCfg), handler.TransferRegistrar)

		// Reads are public; mutations act on behalf of the JWT subject
		v1.GET("/properties", handler.ListProperties)
		v1.POST("/properties", middleware.JWTAuth(authCfg), handler.RegisterProperty)
		v1.GET("/properties/:token_id", handler.GetProperty)
		v1.GET("/properties/:token_id/owner", handler.GetPropertyOwner)
		v1.GET("/properties/:token_id/history", handler.GetOwnershipHistory)
		v1.POST("/properties/:token_id/transfer", middleware.JWTAuth(authCfg), handler.TransferProperty)

		v1.GET("/changes", handler.GetChanges)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
	}
}
