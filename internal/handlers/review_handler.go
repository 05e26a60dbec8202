package handlers

import (
	"net/http"

	"tujitume_backend/internal/services"
	"tujitume_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

// Чтение отзывов висит на /users/:uid и /gigs/:gigId
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	reviews := r.Group("/reviews")
	reviews.Use(guards.Auth)
	{
		reviews.POST("", h.CreateReview)
	}
}

// CreateReview godoc
// @Summary Оставить отзыв
// @Description Участник завершенного гига оценивает другую сторону, один раз
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Отзыв"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(h.GetDB(c), reviewerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
