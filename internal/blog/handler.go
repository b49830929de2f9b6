// File: internal/blog/handler.go
package blog

import (
	"propmatics_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for blog handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new blog handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for blog operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	blogGroup := router.Group("/blogs")
	{
		blogGroup.GET("", h.listPosts)
		blogGroup.GET("/:slug", h.getPostBySlug)
	}
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = ToPostListResponse(p)
	}
	common.RespondOK(c, "Blog posts retrieved successfully.", responses)
}

func (h *Handler) getPostBySlug(c *gin.Context) {
	post, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Blog post retrieved successfully.", ToPostResponse(*post))
}
