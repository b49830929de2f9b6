// File: internal/property/handler.go
package property

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"propmatics_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxImageUploadBytes = 10 << 20

// Handler struct holds dependencies for property handlers.
type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new property handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	// The multipart path validates the decoded JSON payload directly, so
	// the validator reads the same binding tags gin uses.
	v := validator.New()
	v.SetTagName("binding")
	return &Handler{
		service:  service,
		validate: v,
		logger:   logger,
	}
}

// RegisterRoutes sets up the routes for property operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	propertyGroup := router.Group("/properties")
	{
		propertyGroup.GET("", h.listProperties)
		propertyGroup.GET("/:slug", h.getPropertyBySlug)
		propertyGroup.GET("/:slug/related", h.getRelatedProperties)
		propertyGroup.POST("", h.createProperty)
	}
}

func (h *Handler) listProperties(c *gin.Context) {
	var query PropertySearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid query parameters: "+err.Error()))
		return
	}
	properties, err := h.service.ListProperties(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		responses[i] = ToPropertyResponse(p)
	}
	common.RespondOK(c, "Properties retrieved successfully.", responses)
}

func (h *Handler) getPropertyBySlug(c *gin.Context) {
	property, err := h.service.GetPropertyBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Property retrieved successfully.", ToPropertyResponse(*property))
}

func (h *Handler) getRelatedProperties(c *gin.Context) {
	related, err := h.service.GetRelatedProperties(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]PropertyResponse, len(related))
	for i, p := range related {
		responses[i] = ToPropertyResponse(p)
	}
	common.RespondOK(c, "Related properties retrieved successfully.", responses)
}

// createProperty accepts either a plain JSON body or a multipart form
// with the JSON payload in a "data" field and the image in an "image"
// file field.
func (h *Handler) createProperty(c *gin.Context) {
	var req CreatePropertyRequest
	var image *ImageUpload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(maxImageUploadBytes); err != nil {
			h.logger.Warn("Create property: Failed to parse multipart form", zap.Error(err))
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request format or file too large: "+err.Error()))
			return
		}
		if err := json.Unmarshal([]byte(c.Request.FormValue("data")), &req); err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid property payload: "+err.Error()))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
				return
			}
			common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
			return
		}
		file, header, err := c.Request.FormFile("image")
		if err == nil {
			defer file.Close()
			image, err = readImageUpload(file, header)
			if err != nil {
				common.RespondWithError(c, common.ErrBadRequest.WithDetails("Could not read uploaded image: "+err.Error()))
				return
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("Create property: Invalid request body", zap.Error(err))
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
				return
			}
			common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
			return
		}
	}

	property, err := h.service.CreateProperty(c.Request.Context(), req, image)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Property created successfully.", ToPropertyResponse(property.ToContent()))
}

func readImageUpload(file multipart.File, header *multipart.FileHeader) (*ImageUpload, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		return nil, err
	}
	return &ImageUpload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
