// File: internal/contact/handler.go
package contact

import (
	"errors"

	"propmatics_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for contact handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new contact handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for contact form operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	contactGroup := router.Group("/contact")
	{
		contactGroup.POST("", h.createMessage)
		contactGroup.GET("", h.listMessages)
		contactGroup.PATCH("/:id/read", h.markMessageRead)
	}
}

func (h *Handler) createMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create contact message: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	message, err := h.service.CreateMessage(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Your message has been submitted.", ToMessageResponse(message))
}

func (h *Handler) listMessages(c *gin.Context) {
	var query common.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid pagination parameters."))
		return
	}
	messages, pagination, err := h.service.ListMessages(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	common.RespondPaginated(c, "Contact messages retrieved successfully.", responses, pagination)
}

func (h *Handler) markMessageRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid message ID format."))
		return
	}
	if err := h.service.MarkMessageRead(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
