// File: internal/developer/handler.go
package developer

import (
	"errors"

	"propmatics_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for developer handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new developer handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for developer operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	developerGroup := router.Group("/developers")
	{
		developerGroup.GET("", h.listDevelopers)
		developerGroup.POST("", h.createDeveloper)
	}
}

func (h *Handler) listDevelopers(c *gin.Context) {
	developers, err := h.service.ListDevelopers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]DeveloperResponse, len(developers))
	for i, d := range developers {
		responses[i] = ToDeveloperResponse(d)
	}
	common.RespondOK(c, "Developers retrieved successfully.", responses)
}

func (h *Handler) createDeveloper(c *gin.Context) {
	var req CreateDeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create developer: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	developer, err := h.service.CreateDeveloper(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Developer created successfully.", ToDeveloperResponse(developer.ToContent()))
}
