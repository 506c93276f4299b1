package room

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.List)
		rooms.GET("/available", h.FindAvailable)
		rooms.GET("/type/:type", h.ListByType)
		rooms.GET("/capacity/:capacity", h.ListByCapacity)
		rooms.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.Create)
		rooms.PUT("/:id", h.Update)
		rooms.DELETE("/:id", h.Delete)
	}
}

/* ---------- ROOM HANDLERS ---------- */

// List handles GET /api/v1/rooms
func (h *Handler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// Get handles GET /api/v1/rooms/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

// ListByType handles GET /api/v1/rooms/type/:type
func (h *Handler) ListByType(c *gin.Context) {
	rooms, err := h.service.ListByType(c.Request.Context(), domain.RoomType(c.Param("type")))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// ListByCapacity handles GET /api/v1/rooms/capacity/:capacity
func (h *Handler) ListByCapacity(c *gin.Context) {
	capacity, err := strconv.Atoi(c.Param("capacity"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid capacity")
		return
	}
	rooms, err := h.service.ListByCapacity(c.Request.Context(), capacity)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// FindAvailable handles GET /api/v1/rooms/available?check_in=&check_out=&type=
func (h *Handler) FindAvailable(c *gin.Context) {
	checkIn, err1 := domain.ParseDate(c.Query("check_in"))
	checkOut, err2 := domain.ParseDate(c.Query("check_out"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out must be dates in YYYY-MM-DD format")
		return
	}

	rooms, err := h.service.FindAvailable(c.Request.Context(), checkIn, checkOut, domain.RoomType(c.Query("type")))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// Create godoc
// @Summary      Create a room
// @Tags         Rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateRoomRequest true "Room"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{} "Room number already taken"
// @Router       /rooms [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	room, err := h.service.Create(c.Request.Context(), access.FromContext(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

// Update handles PUT /api/v1/rooms/:id; only fields present in the body change.
func (h *Handler) Update(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	room, err := h.service.Update(c.Request.Context(), access.FromContext(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

// Delete handles DELETE /api/v1/rooms/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), access.FromContext(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have permission to perform this action")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
