package routes

import (
	"tujitume_backend/internal/handlers"
	"tujitume_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует служебные маршруты и HTTP API v1.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards handlers.RouteGuards,
) {
	SetupPublicRoutes(ginRouter)

	api := ginRouter.Group("/api/v1")
	appHandlers.RegisterRoutes(api, guards)

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
