package blog

import (
	"errors"
	"net/http"

	"hotel/internal/pkg/access"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		posts := public.Group("/blog")
		posts.GET("", h.ListPublished)
		posts.GET("/search", h.Search)
		posts.GET("/tag/:tag", h.ListByTag)
		posts.GET("/:id", h.GetPublished)
	}

	if protected != nil {
		posts := protected.Group("/blog")
		posts.GET("/my", h.ListMine)
		posts.GET("/admin/:id", h.GetAny)
		posts.POST("", h.Create)
		posts.PUT("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
	}
}

// ListPublished godoc
// @Summary      Published blog posts
// @Tags         Blog
// @Produce      json
// @Param        page query int false "Page (1-based)"
// @Param        size query int false "Page size"
// @Success      200 {object} map[string]interface{}
// @Router       /blog [get]
func (h *Handler) ListPublished(c *gin.Context) {
	page, size := response.PageParams(c)
	list, total, err := h.svc.ListPublished(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, toResponses(list), page, size, total)
}

func (h *Handler) GetPublished(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPublished(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(p))
}

func (h *Handler) GetAny(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetAny(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(p))
}

// Search godoc
// @Summary      Search published posts
// @Tags         Blog
// @Produce      json
// @Param        keyword query string true "Matched against title and content"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /blog/search [get]
func (h *Handler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) ListByTag(c *gin.Context) {
	list, err := h.svc.ListByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.svc.ListMine(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), access.FromContext(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), access.FromContext(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), access.FromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
