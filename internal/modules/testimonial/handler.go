package testimonial

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

// RegisterRoutes mounts the public reads and, when protected is given, the
// authenticated routes. Get is served from protected only so the caller's
// identity is known for pending testimonials.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/testimonials", h.ListApproved)
	}

	if protected != nil {
		t := protected.Group("/testimonials")
		t.GET("/pending", h.ListPending)
		t.GET("/my", h.ListMine)
		t.GET("/:id", h.Get)
		t.POST("", h.Create)
		t.PUT("/:id", h.Update)
		t.PATCH("/:id/approve", h.Approve)
		t.DELETE("/:id", h.Delete)
	}
}

// ListApproved godoc
// @Summary      Approved testimonials
// @Tags         Testimonials
// @Produce      json
// @Param        page query int false "Page (1-based)"
// @Param        size query int false "Page size"
// @Success      200 {object} map[string]interface{}
// @Router       /testimonials [get]
func (h *Handler) ListApproved(c *gin.Context) {
	page, size := response.PageParams(c)
	items, total, err := h.svc.ListApproved(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, page, size, total)
}

func (h *Handler) ListPending(c *gin.Context) {
	items, err := h.svc.ListPending(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.svc.ListMine(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Create godoc
// @Summary      Leave a testimonial
// @Description  New testimonials wait for moderation before they are listed.
// @Tags         Testimonials
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateTestimonialRequest true "Testimonial"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /testimonials [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), access.FromContext(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), access.FromContext(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Approve(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
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
	response.Success(c, http.StatusOK, gin.H{"message": "Testimonial deleted"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
