package handlers

import (
	"net/http"

	"tujitume_backend/internal/services"
	"tujitume_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewAuthHandler(base *BaseHandler, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	authGroup := r.Group("/auth")
	authGroup.Use(guards.Identity)
	{
		authGroup.POST("/verify-token", h.VerifyToken)
		authGroup.POST("/register", h.Register)
	}
}

// VerifyToken godoc
// @Summary Проверить токен
// @Description Проверяет bearer-токен провайдера и возвращает uid, email и имя
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.VerifyTokenResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/verify-token [post]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.VerifyTokenResponse{
		UID:   identity.UID,
		Email: identity.Email,
		Name:  identity.Name,
	})
}

// Register godoc
// @Summary Регистрация по токену
// @Description Создает пользователя по подтвержденному токену, если его еще нет
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterUserRequest false "Необязательные email и имя"
// @Success 201 {object} dto.RegisterResponse
// @Success 200 {object} dto.RegisterResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.RegisterUserRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.Register(h.GetDB(c), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}
