package reservation

import (
	"errors"
	"net/http"
	"time"

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

// RegisterRoutes mounts the reservation endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	{
		reservations.GET("", h.ListAll)
		reservations.GET("/my", h.ListMine)
		reservations.GET("/status/:status", h.ListByStatus)
		reservations.GET("/date", h.ListByDate)
		reservations.GET("/:id", h.Get)
		reservations.POST("", h.Create)
		reservations.PUT("/:id", h.Update)
		reservations.DELETE("/:id", h.Cancel)
		reservations.PATCH("/:id/status", h.UpdateStatus)
	}
}

// RegisterPublicRoutes mounts the availability check, which needs no token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/availability", h.CheckAvailability)
}

// CheckAvailability godoc
// @Summary		Check room availability
// @Description	Reports whether the room is free for the half-open stay [check_in, check_out).
// @Tags		Reservations
// @Param		id			path	int		true	"Room ID"
// @Param		check_in	query	string	true	"Check-in date (YYYY-MM-DD)"
// @Param		check_out	query	string	true	"Check-out date (YYYY-MM-DD)"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/rooms/{id}/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	checkIn, ok := dateQuery(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := dateQuery(c, "check_out")
	if !ok {
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AvailabilityResponse{
		RoomID:       roomID,
		CheckInDate:  checkIn.Format(domain.DateLayout),
		CheckOutDate: checkOut.Format(domain.DateLayout),
		Available:    available,
	})
}

// Create godoc
// @Summary		Create a reservation
// @Description	Reserves a room for the caller if no live reservation overlaps the requested dates.
// @Tags		Reservations
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		request	body	CreateReservationRequest	true	"Reservation"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{} "Room already booked for these dates"
// @Router		/reservations [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), access.FromContext(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(res))
}

// Get godoc
// @Summary		Get a reservation
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id	path	int	true	"Reservation ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/reservations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Get(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(res))
}

// Update godoc
// @Summary		Update a reservation
// @Description	Applies only the fields present in the body. Changing dates re-checks availability. Only staff may set status.
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id		path	int							true	"Reservation ID"
// @Param		request	body	UpdateReservationRequest	true	"Fields to change"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/reservations/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), access.FromContext(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(res))
}

// Cancel godoc
// @Summary		Cancel a reservation
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id	path	int	true	"Reservation ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{} "Reservation already checked in or finished"
// @Router		/reservations/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Cancel(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(res))
}

// UpdateStatus godoc
// @Summary		Set reservation status (staff)
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id		path	int					true	"Reservation ID"
// @Param		request	body	UpdateStatusRequest	true	"New status"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/reservations/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.SetStatus(c.Request.Context(), access.FromContext(c), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(res))
}

func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) ListByStatus(c *gin.Context) {
	status := domain.ReservationStatus(c.Param("status"))
	list, err := h.service.ListByStatus(c.Request.Context(), access.FromContext(c), status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

// ListByDate returns arrivals and departures for ?date=YYYY-MM-DD.
func (h *Handler) ListByDate(c *gin.Context) {
	day, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	list, err := h.service.ListByDate(c.Request.Context(), access.FromContext(c), day)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func dateQuery(c *gin.Context, name string) (d time.Time, ok bool) {
	d, err := domain.ParseDate(c.Query(name))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date",
			map[string]string{name: "must be a date in " + domain.DateLayout + " format"})
		return d, false
	}
	return d, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Room is not available for the selected dates")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
