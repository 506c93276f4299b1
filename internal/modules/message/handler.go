package message

import (
	"errors"
	"net/http"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages")
	{
		messages.GET("/received", h.Received)
		messages.GET("/sent", h.Sent)
		messages.GET("/all", h.All)
		messages.GET("/unread/count", h.UnreadCount)
		messages.GET("/conversation/:userId", h.Conversation)
		messages.GET("/:id", h.Get)
		messages.POST("", h.Send)
		messages.PATCH("/:id/read", h.MarkRead)
		messages.DELETE("/:id", h.Delete)
	}
}

// Send godoc
// @Summary      Send a message
// @Description  Stores a message and pushes it to the recipient when they are connected to /ws/messages.
// @Tags         Messages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body SendMessageRequest true "Message"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /messages [post]
func (h *Handler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	m, err := h.service.Send(c.Request.Context(), access.FromContext(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(m))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	m, err := h.service.Get(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(m))
}

func (h *Handler) Received(c *gin.Context) {
	page, size := response.PageParams(c)
	list, total, err := h.service.Received(c.Request.Context(), access.FromContext(c), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, toResponses(list), page, size, total)
}

func (h *Handler) Sent(c *gin.Context) {
	page, size := response.PageParams(c)
	list, total, err := h.service.Sent(c.Request.Context(), access.FromContext(c), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, toResponses(list), page, size, total)
}

func (h *Handler) All(c *gin.Context) {
	list, err := h.service.ListForUser(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) Conversation(c *gin.Context) {
	otherID, ok := response.IDParam(c, "userId")
	if !ok {
		return
	}
	list, err := h.service.Conversation(c.Request.Context(), access.FromContext(c), otherID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(list))
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.CountUnread(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, UnreadCountResponse{Count: n})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	m, err := h.service.MarkRead(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(m))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), access.FromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Message deleted"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRecipientNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
