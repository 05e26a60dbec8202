package handlers

import (
	"net/http"

	"tujitume_backend/internal/services"
	"tujitume_backend/internal/services/dto"
	"tujitume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService        services.UserService
	gigService         services.GigService
	applicationService services.ApplicationService
	reviewService      services.ReviewService
}

func NewUserHandler(
	base *BaseHandler,
	userService services.UserService,
	gigService services.GigService,
	applicationService services.ApplicationService,
	reviewService services.ReviewService,
) *UserHandler {
	return &UserHandler{
		BaseHandler:        base,
		userService:        userService,
		gigService:         gigService,
		applicationService: applicationService,
		reviewService:      reviewService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	users := r.Group("/users")

	me := users.Group("/me")
	me.Use(guards.Auth)
	{
		me.GET("", h.GetMe)
		me.PUT("", h.UpdateMe)
		me.GET("/gigs", h.GetMyGigs)
		me.GET("/applications", h.GetMyApplications)
	}

	users.GET("/:uid", h.GetUser)
	users.GET("/:uid/reviews", h.GetUserReviews)
	users.GET("/:uid/review-stats", h.GetUserReviewStats)
}

// GetMe godoc
// @Summary Текущий пользователь
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Обновить свой профиль
// @Description Меняет только переданные поля
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserPatch true "Изменяемые поля"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var patch dto.UserPatch
	if !h.BindAndValidate_JSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No fields to update"))
		return
	}

	user, err := h.userService.UpdateUser(h.GetDB(c), userID, &patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMyGigs godoc
// @Summary Мои гиги
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.GigResponse
// @Router /users/me/gigs [get]
func (h *UserHandler) GetMyGigs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gigs, err := h.gigService.GetMyGigs(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gigs)
}

// GetMyApplications godoc
// @Summary Мои отклики
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ApplicationResponse
// @Router /users/me/applications [get]
func (h *UserHandler) GetMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.GetMyApplications(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetUser godoc
// @Summary Публичный профиль
// @Description Email и телефон не возвращаются
// @Tags users
// @Produce json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /users/{uid} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetPublicProfile(h.GetDB(c), c.Param("uid"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserReviews godoc
// @Summary Отзывы о пользователе
// @Tags reviews
// @Produce json
// @Param uid path string true "UID пользователя"
// @Success 200 {array} dto.ReviewResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /users/{uid}/reviews [get]
func (h *UserHandler) GetUserReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetUserReviews(h.GetDB(c), c.Param("uid"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetUserReviewStats godoc
// @Summary Средняя оценка пользователя
// @Tags reviews
// @Produce json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} dto.ReviewStatsResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /users/{uid}/review-stats [get]
func (h *UserHandler) GetUserReviewStats(c *gin.Context) {
	stats, err := h.reviewService.GetUserReviewStats(h.GetDB(c), c.Param("uid"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
