package handlers

import (
	"net/http"

	"tujitume_backend/internal/services"
	"tujitume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	applications := r.Group("/applications")
	applications.Use(guards.Auth)
	{
		applications.GET("/:applicationId", h.GetApplication)
		applications.PUT("/:applicationId/select", h.SelectApplicant)
		applications.PUT("/:applicationId/reject", h.RejectApplicant)
	}
}

// GetApplication godoc
// @Summary Отклик по id
// @Description Доступно владельцу гига и автору отклика
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{applicationId} [get]
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applicationID, ok := ParseIDParam(c, "applicationId", apperrors.ErrApplicationNotFound)
	if !ok {
		return
	}

	app, err := h.applicationService.GetApplication(h.GetDB(c), userID, applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// SelectApplicant godoc
// @Summary Выбрать исполнителя
// @Description На гиг может быть принят только один отклик
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{applicationId}/select [put]
func (h *ApplicationHandler) SelectApplicant(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applicationID, ok := ParseIDParam(c, "applicationId", apperrors.ErrApplicationNotFound)
	if !ok {
		return
	}

	app, err := h.applicationService.SelectApplicant(h.GetDB(c), userID, applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// RejectApplicant godoc
// @Summary Отклонить отклик
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{applicationId}/reject [put]
func (h *ApplicationHandler) RejectApplicant(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applicationID, ok := ParseIDParam(c, "applicationId", apperrors.ErrApplicationNotFound)
	if !ok {
		return
	}

	app, err := h.applicationService.RejectApplicant(h.GetDB(c), userID, applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
