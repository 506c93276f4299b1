package payment

import (
	"errors"
	"net/http"

	"hotel/internal/pkg/access"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.GET("/reservation/:reservationId", h.ListByReservation)
		payments.POST("", h.RecordPayment)
		payments.PATCH("/:id/status", h.UpdateStatus)
	}
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Stores a local payment record for a reservation. A completed payment confirms the reservation.
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body RecordPaymentRequest true "Payment"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loggerf("level=warn msg=invalid payment payload err=%v", err)
		response.BindError(c, err)
		return
	}

	p, err := h.service.RecordPayment(c.Request.Context(), access.FromContext(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(p))
}

// UpdateStatus godoc
// @Summary      Set payment status
// @Tags         Payments
// @Security     BearerAuth
// @Param        id   path int                 true "Payment ID"
// @Param        body body UpdateStatusRequest true "New status"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /payments/{id}/status [patch]
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

	p, err := h.service.SetStatus(c.Request.Context(), access.FromContext(c), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(p))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(p))
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), access.FromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) ListByReservation(c *gin.Context) {
	id, ok := response.IDParam(c, "reservationId")
	if !ok {
		return
	}
	list, err := h.service.ListByReservation(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrRoomConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Room is not available for the reservation dates")
	default:
		h.loggerf("level=error msg=payment request failed path=%s err=%v", c.FullPath(), err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
