package event

import (
	"time"

	domain "event-registry-service/internal/domain/event"
)

// CreateEventRequest represents the request payload for creating a new event.
// ID is optional; when empty the usecase generates one.
type CreateEventRequest struct {
	ID            string    `validate:"omitempty,max=64"`
	Name          string    `validate:"required,min=1,max=200"`
	Description   string    `validate:"omitempty,max=2000"`
	Fee           float64   `validate:"gte=0"`
	StartDateTime time.Time `validate:"required"`
	EndDateTime   time.Time `validate:"required,gtfield=StartDateTime"`
}

// UpdateEventRequest represents the request payload for updating an existing
// event. The participant roster is not touched by a field update.
type UpdateEventRequest struct {
	ID            string    `validate:"required"`
	Name          string    `validate:"required,min=1,max=200"`
	Description   string    `validate:"omitempty,max=2000"`
	Fee           float64   `validate:"gte=0"`
	StartDateTime time.Time `validate:"required"`
	EndDateTime   time.Time `validate:"required,gtfield=StartDateTime"`
}

// AddParticipantRequest registers a user on an event's roster.
type AddParticipantRequest struct {
	EventID string `validate:"required"`
	UserID  string `validate:"required"`
}

// UpdatePaymentStatusRequest changes the payment state of one roster entry.
type UpdatePaymentStatusRequest struct {
	EventID string `validate:"required"`
	UserID  string `validate:"required"`
	Status  string `validate:"required,oneof=pending paid refunded"`
}

func (r CreateEventRequest) apply(e *domain.Event) {
	e.Name = r.Name
	e.Description = r.Description
	e.Fee = r.Fee
	e.StartDateTime = r.StartDateTime
	e.EndDateTime = r.EndDateTime
}

func (r UpdateEventRequest) apply(e *domain.Event) {
	e.Name = r.Name
	e.Description = r.Description
	e.Fee = r.Fee
	e.StartDateTime = r.StartDateTime
	e.EndDateTime = r.EndDateTime
}
