package handlers

import (
	"net/http"

	"tujitume_backend/internal/services"
	"tujitume_backend/internal/services/dto"
	"tujitume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService         services.GigService
	applicationService services.ApplicationService
	reviewService      services.ReviewService
}

func NewGigHandler(
	base *BaseHandler,
	gigService services.GigService,
	applicationService services.ApplicationService,
	reviewService services.ReviewService,
) *GigHandler {
	return &GigHandler{
		BaseHandler:        base,
		gigService:         gigService,
		applicationService: applicationService,
		reviewService:      reviewService,
	}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	gigs := r.Group("/gigs")

	gigs.GET("", guards.Optional, h.ListGigs)
	gigs.GET("/:gigId", h.GetGig)
	gigs.GET("/:gigId/reviews", h.GetGigReviews)

	protected := gigs.Group("")
	protected.Use(guards.Auth)
	{
		protected.POST("", h.CreateGig)
		protected.PUT("/:gigId", h.UpdateGig)
		protected.DELETE("/:gigId", h.DeleteGig)
		protected.PUT("/:gigId/complete", h.CompleteGig)
		protected.POST("/:gigId/applications", h.Apply)
		protected.GET("/:gigId/applications", h.ListApplications)
	}
}

// ListGigs godoc
// @Summary Список гигов
// @Description Фильтры объединяются через И; skills - любой общий навык
// @Tags gigs
// @Produce json
// @Param budget_type query string false "fixed | hourly"
// @Param skills query []string false "Навыки (через запятую или повтором)"
// @Param search query string false "Поиск по названию, описанию и локации"
// @Param sort_by query string false "created_at | budget"
// @Param sort_order query string false "asc | desc"
// @Param skip query int false "Смещение"
// @Param limit query int false "Размер страницы (1..100)"
// @Success 200 {object} dto.GigListResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /gigs [get]
func (h *GigHandler) ListGigs(c *gin.Context) {
	var query dto.ListGigsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.gigService.ListGigs(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateGig godoc
// @Summary Создать гиг
// @Tags gigs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGigRequest true "Данные гига"
// @Success 201 {object} dto.GigResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /gigs [post]
func (h *GigHandler) CreateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gig, err := h.gigService.CreateGig(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gig)
}

// GetGig godoc
// @Summary Гиг по id
// @Tags gigs
// @Produce json
// @Param gigId path string true "ID гига"
// @Success 200 {object} dto.GigResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId} [get]
func (h *GigHandler) GetGig(c *gin.Context) {
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	gig, err := h.gigService.GetGig(h.GetDB(c), gigID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gig)
}

// UpdateGig godoc
// @Summary Изменить гиг
// @Description Только владелец и только пока гиг не завершен
// @Tags gigs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gigId path string true "ID гига"
// @Param request body dto.GigPatch true "Изменяемые поля"
// @Success 200 {object} dto.GigResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId} [put]
func (h *GigHandler) UpdateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	var patch dto.GigPatch
	if !h.BindAndValidate_JSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No fields to update"))
		return
	}

	gig, err := h.gigService.UpdateGig(h.GetDB(c), userID, gigID, &patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gig)
}

// DeleteGig godoc
// @Summary Удалить гиг
// @Description Нельзя удалить гиг с принятым исполнителем
// @Tags gigs
// @Security BearerAuth
// @Param gigId path string true "ID гига"
// @Success 204
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId} [delete]
func (h *GigHandler) DeleteGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	if err := h.gigService.DeleteGig(h.GetDB(c), userID, gigID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteGig godoc
// @Summary Завершить гиг
// @Description Владелец завершает гиг с принятым исполнителем; повторно нельзя
// @Tags gigs
// @Produce json
// @Security BearerAuth
// @Param gigId path string true "ID гига"
// @Success 200 {object} dto.GigResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId}/complete [put]
func (h *GigHandler) CompleteGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	gig, err := h.gigService.CompleteGig(h.GetDB(c), userID, gigID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gig)
}

// Apply godoc
// @Summary Откликнуться на гиг
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gigId path string true "ID гига"
// @Param request body dto.CreateApplicationRequest true "Сопроводительное письмо"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId}/applications [post]
func (h *GigHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.Apply(h.GetDB(c), userID, gigID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListApplications godoc
// @Summary Отклики на гиг
// @Description Доступно только владельцу гига
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param gigId path string true "ID гига"
// @Success 200 {array} dto.ApplicationResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId}/applications [get]
func (h *GigHandler) ListApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListGigApplications(h.GetDB(c), userID, gigID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetGigReviews godoc
// @Summary Отзывы по гигу
// @Tags reviews
// @Produce json
// @Param gigId path string true "ID гига"
// @Success 200 {array} dto.ReviewResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gigs/{gigId}/reviews [get]
func (h *GigHandler) GetGigReviews(c *gin.Context) {
	gigID, ok := ParseIDParam(c, "gigId", apperrors.ErrGigNotFound)
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetGigReviews(h.GetDB(c), gigID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
