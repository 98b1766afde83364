package event

import (
	"context"

	domain "event-registry-service/internal/domain/event"
)

// Repository defines the interface for event data access operations.
type Repository interface {
	// Save upserts: an event with the same id is replaced in place, a new
	// id is appended. Returns the saved event.
	Save(ctx context.Context, e *domain.Event) (*domain.Event, error)
	// GetByID returns the event with the given id or a NotFound error.
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns the full collection verbatim.
	List(ctx context.Context) ([]domain.Event, error)
	// DeleteByID removes the event; a missing id is a no-op success.
	DeleteByID(ctx context.Context, id string) error
}

// Usecase defines the interface for event business logic operations,
// including the compound roster mutations composed from Repository
// primitives.
type Usecase interface {
	CreateEvent(ctx context.Context, in CreateEventRequest) (*domain.Event, error)
	UpdateEvent(ctx context.Context, in UpdateEventRequest) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	AddParticipant(ctx context.Context, in AddParticipantRequest) (*domain.Event, error)
	RemoveParticipant(ctx context.Context, eventID, userID string) (*domain.Event, error)
	UpdatePaymentStatus(ctx context.Context, in UpdatePaymentStatusRequest) (*domain.Event, error)
}
