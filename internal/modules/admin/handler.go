package admin

import (
	"errors"
	"net/http"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ChangeRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required"`
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.GetUsers)
	admin.PATCH("/users/:id/role", h.ChangeRole)
	admin.PATCH("/users/:id/block", h.BlockUser)
	admin.PATCH("/users/:id/unblock", h.UnblockUser)
}

// GetUsers godoc
// @Summary		List users
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		role	query	string	false	"Filter by role"
// @Param		page	query	int		false	"Page (1-based)"	default(1)
// @Param		size	query	int		false	"Page size"	default(10)
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/admin/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	page, size := response.PageParams(c)
	users, total, err := h.service.ListUsers(c.Request.Context(), access.FromContext(c), domain.UserRole(c.Query("role")), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, users, page, size, total)
}

// ChangeRole godoc
// @Summary		Change a user's role
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		id		path	int					true	"User ID"
// @Param		request	body	ChangeRoleRequest	true	"New role"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/users/{id}/role [patch]
func (h *Handler) ChangeRole(c *gin.Context) {
	userID, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.service.ChangeRole(c.Request.Context(), access.FromContext(c), userID, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) BlockUser(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *Handler) UnblockUser(c *gin.Context) {
	h.setEnabled(c, true)
}

func (h *Handler) setEnabled(c *gin.Context, enabled bool) {
	userID, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.SetEnabled(c.Request.Context(), access.FromContext(c), userID, enabled)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrInvalidRole):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed",
			map[string]string{"role": "must be one of [client receptionist manager admin]"})
	case errors.Is(err, ErrSelfChange):
		response.Error(c, http.StatusBadRequest, "SELF_CHANGE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
