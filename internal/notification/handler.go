// File: internal/notification/handler.go
package notification

import (
	"errors"
	"strconv"

	"propmatics_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for notification handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for notification operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	notificationGroup := router.Group("/notifications")
	{
		notificationGroup.GET("", h.listNotifications)
		notificationGroup.POST("", h.createNotification)
	}
}

func (h *Handler) listNotifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid limit parameter."))
			return
		}
		limit = parsed
	}

	notifications, err := h.service.ListNotifications(c.Request.Context(), limit)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ToNotificationResponse(n)
	}
	common.RespondOK(c, "Notifications retrieved successfully.", responses)
}

func (h *Handler) createNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create notification: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	notification, err := h.service.CreateNotification(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Notification created successfully.", ToNotificationResponse(notification.ToContent()))
}
