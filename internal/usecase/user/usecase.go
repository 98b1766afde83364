package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "event-registry-service/internal/domain/user"
	pkgerrors "event-registry-service/pkg/errors"
)

// Service implements the business logic for user management operations.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates a new user Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New(), now: time.Now}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "oneof":
				messages = append(messages, fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param()))
			case "datetime":
				messages = append(messages, fmt.Sprintf("%s must be a date in %s format", e.Field(), e.Param()))
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

// CreateUser creates a new user after validating the request. When the
// request carries an explicit id it must not collide with an existing user;
// when it does not, a fresh uuid is generated.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

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
			s.log.Warn("user id already exists", zap.String("id", id))
			return nil, pkgerrors.NewAlreadyExistsError("user", fmt.Sprintf("user %s already exists", id))
		}
	}

	now := s.now().UTC()
	u := &domain.User{ID: id, CreatedAt: now, UpdatedAt: now}
	in.apply(u)

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		s.log.Error("failed to create user", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// UpdateUser overwrites an existing user's fields in place, preserving the
// original createdAt timestamp.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*domain.User, error) {
	s.log.Info("updating user", zap.String("id", in.ID), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Warn("failed to load user for update", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	in.apply(existing)
	existing.UpdatedAt = s.now().UTC()

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		s.log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("id", "must not be empty")
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to get user", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

// ListUsers returns the full user collection.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user by id. Deleting a non-existent id succeeds.
// Stale participant snapshots referencing the user are left in place.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	s.log.Info("deleting user", zap.String("id", id))

	if id == "" {
		return pkgerrors.NewValidationError("id", "must not be empty")
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
