package handlers

import "github.com/gin-gonic/gin"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	GigHandler          *GigHandler
	ApplicationHandler  *ApplicationHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
}

// RouteGuards - middleware доступа, которые хэндлеры вешают на свои группы
type RouteGuards struct {
	// Identity проверяет токен, пользователь в БД не создается
	Identity gin.HandlerFunc
	// Auth проверяет токен и гарантирует запись пользователя
	Auth gin.HandlerFunc
	// Optional пропускает анонимные запросы
	Optional gin.HandlerFunc
}

// RegisterRoutes вешает маршруты всех хэндлеров на группу /api/v1
func (h *AppHandlers) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	h.AuthHandler.RegisterRoutes(r, guards)
	h.UserHandler.RegisterRoutes(r, guards)
	h.GigHandler.RegisterRoutes(r, guards)
	h.ApplicationHandler.RegisterRoutes(r, guards)
	h.ReviewHandler.RegisterRoutes(r, guards)
	h.NotificationHandler.RegisterRoutes(r, guards)
}
