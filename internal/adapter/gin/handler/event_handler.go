package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-registry-service/internal/usecase/event"
)

// EventHandler handles HTTP requests for event and roster operations
type EventHandler struct {
	uc  event.Usecase
	log *zap.Logger
}

// NewEventHandler creates a new EventHandler instance
func NewEventHandler(uc event.Usecase, log *zap.Logger) *EventHandler {
	return &EventHandler{
		uc:  uc,
		log: log,
	}
}

// EventPayload represents the HTTP request body for creating or updating an event
type EventPayload struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" binding:"required"`
	Description   string    `json:"description"`
	Fee           float64   `json:"fee"`
	StartDateTime time.Time `json:"startDateTime" binding:"required"`
	EndDateTime   time.Time `json:"endDateTime" binding:"required"`
}

// JoinPayload represents the HTTP request body for adding a participant
type JoinPayload struct {
	UserID string `json:"userId" binding:"required"`
}

// PaymentPayload represents the HTTP request body for a payment status change
type PaymentPayload struct {
	Status string `json:"status" binding:"required"`
}

// CreateEvent handles POST /v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	e, err := h.uc.CreateEvent(c.Request.Context(), event.CreateEventRequest{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Fee:           req.Fee,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondCreated(c, e)
}

// GetEvent handles GET /v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	e, err := h.uc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, e)
}

// UpdateEvent handles PUT /v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req EventPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	e, err := h.uc.UpdateEvent(c.Request.Context(), event.UpdateEventRequest{
		ID:            c.Param("id"),
		Name:          req.Name,
		Description:   req.Description,
		Fee:           req.Fee,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, e)
}

// DeleteEvent handles DELETE /v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.uc.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c)
}

// ListEvents handles GET /v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.uc.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, events)
}

// AddParticipant handles POST /v1/events/:id/participants
func (h *EventHandler) AddParticipant(c *gin.Context) {
	var req JoinPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid join request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	e, err := h.uc.AddParticipant(c.Request.Context(), event.AddParticipantRequest{
		EventID: c.Param("id"),
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, e)
}

// RemoveParticipant handles DELETE /v1/events/:id/participants/:userId
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	e, err := h.uc.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, e)
}

// UpdatePaymentStatus handles PUT /v1/events/:id/participants/:userId/payment
func (h *EventHandler) UpdatePaymentStatus(c *gin.Context) {
	var req PaymentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid payment status request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	e, err := h.uc.UpdatePaymentStatus(c.Request.Context(), event.UpdatePaymentStatusRequest{
		EventID: c.Param("id"),
		UserID:  c.Param("userId"),
		Status:  req.Status,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, e)
}
