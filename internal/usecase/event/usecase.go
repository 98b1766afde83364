package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "event-registry-service/internal/domain/event"
	userdomain "event-registry-service/internal/domain/user"
	pkgerrors "event-registry-service/pkg/errors"
)

// UserReader is the subset of the user repository the event usecase needs
// to snapshot a user into a roster entry.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Service implements the business logic for event management, including the
// compound participant operations.
type Service struct {
	repo     Repository
	users    UserReader
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates a new event Service.
func New(r Repository, users UserReader, log *zap.Logger) *Service {
	return &Service{repo: r, users: users, log: log, validate: validator.New(), now: time.Now}
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "gte":
				messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
			case "gtfield":
				messages = append(messages, fmt.Sprintf("%s must be after %s", e.Field(), e.Param()))
			case "oneof":
				messages = append(messages, fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// CreateEvent creates a new event with an empty roster.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventRequest) (*domain.Event, error) {
	s.log.Info("creating event", zap.String("name", in.Name))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	} else {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil && !pkgerrors.IsNotFound(err) {
			s.log.Error("failed to check existing id", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		if existing != nil {
			s.log.Warn("event id already exists", zap.String("id", id))
			return nil, pkgerrors.NewAlreadyExistsError("event", fmt.Sprintf("event %s already exists", id))
		}
	}

	now := s.now().UTC()
	e := &domain.Event{
		ID:           id,
		Participants: []domain.Participant{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	in.apply(e)

	saved, err := s.repo.Save(ctx, e)
	if err != nil {
		s.log.Error("failed to create event", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// UpdateEvent overwrites an existing event's fields in place. The roster and
// createdAt are preserved.
func (s *Service) UpdateEvent(ctx context.Context, in UpdateEventRequest) (*domain.Event, error) {
	s.log.Info("updating event", zap.String("id", in.ID))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Warn("failed to load event for update", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	in.apply(existing)
	existing.UpdatedAt = s.now().UTC()

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		s.log.Error("failed to update event", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// GetEvent retrieves an event by id.
func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("id", "must not be empty")
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to get event", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

// ListEvents returns the full event collection.
func (s *Service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list events", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// DeleteEvent removes an event by id. Deleting a non-existent id succeeds.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	s.log.Info("deleting event", zap.String("id", id))

	if id == "" {
		return pkgerrors.NewValidationError("id", "must not be empty")
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log.Error("failed to delete event", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// AddParticipant registers a user on the event's roster, embedding a
// snapshot of the user record as it exists right now. Later edits to the
// user do not propagate into the roster. A user may appear at most once per
// event; duplicate joins are rejected.
func (s *Service) AddParticipant(ctx context.Context, in AddParticipantRequest) (*domain.Event, error) {
	s.log.Info("adding participant", zap.String("event_id", in.EventID), zap.String("user_id", in.UserID))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	e, err := s.repo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	if e.FindParticipant(in.UserID) >= 0 {
		s.log.Warn("user already joined event",
			zap.String("event_id", in.EventID), zap.String("user_id", in.UserID))
		return nil, pkgerrors.NewAlreadyExistsError("participant",
			fmt.Sprintf("user %s already joined event %s", in.UserID, in.EventID))
	}

	u, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		s.log.Warn("failed to load user for roster snapshot",
			zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	e.Participants = append(e.Participants, domain.Participant{
		UserID:        u.ID,
		User:          *u,
		PaymentStatus: domain.PaymentPending,
		JoinedAt:      now,
	})
	e.UpdatedAt = now

	saved, err := s.repo.Save(ctx, e)
	if err != nil {
		s.log.Error("failed to save event after join",
			zap.String("event_id", in.EventID), zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// RemoveParticipant drops the roster entry for userID. Removing a user who
// never joined leaves the roster unchanged; the event is saved either way.
func (s *Service) RemoveParticipant(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	s.log.Info("removing participant", zap.String("event_id", eventID), zap.String("user_id", userID))

	if eventID == "" || userID == "" {
		return nil, pkgerrors.NewValidationError("", "event id and user id must not be empty")
	}

	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if idx := e.FindParticipant(userID); idx >= 0 {
		e.Participants = append(e.Participants[:idx], e.Participants[idx+1:]...)
	}
	e.UpdatedAt = s.now().UTC()

	saved, err := s.repo.Save(ctx, e)
	if err != nil {
		s.log.Error("failed to save event after leave",
			zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// UpdatePaymentStatus replaces the payment status of one roster entry.
// It is a composition of GetByID and Save, not atomic against other
// concurrent writers of the same event. A userID absent from the roster is
// a silent no-op; the event is still saved with a fresh updatedAt.
func (s *Service) UpdatePaymentStatus(ctx context.Context, in UpdatePaymentStatusRequest) (*domain.Event, error) {
	s.log.Info("updating payment status",
		zap.String("event_id", in.EventID),
		zap.String("user_id", in.UserID),
		zap.String("status", in.Status),
	)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	e, err := s.repo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	if idx := e.FindParticipant(in.UserID); idx >= 0 {
		e.Participants[idx].PaymentStatus = domain.PaymentStatus(in.Status)
	} else {
		s.log.Warn("payment status update for user not on roster",
			zap.String("event_id", in.EventID), zap.String("user_id", in.UserID))
	}
	e.UpdatedAt = s.now().UTC()

	saved, err := s.repo.Save(ctx, e)
	if err != nil {
		s.log.Error("failed to save event after payment update",
			zap.String("event_id", in.EventID), zap.Error(err))
		return nil, err
	}

	return saved, nil
}
