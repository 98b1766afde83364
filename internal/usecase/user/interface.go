package user

import (
	"context"

	domain "event-registry-service/internal/domain/user"
)

// Repository defines the interface for user data access operations.
// It abstracts the storage layer, so the blob-backed and sql-backed
// implementations can be used interchangeably.
type Repository interface {
	// Save upserts: a user with the same id is replaced in place, a new
	// id is appended. Returns the saved user.
	Save(ctx context.Context, u *domain.User) (*domain.User, error)
	// GetByID returns the user with the given id or a NotFound error.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// List returns the full collection verbatim.
	List(ctx context.Context) ([]domain.User, error)
	// DeleteByID removes the user; a missing id is a no-op success.
	DeleteByID(ctx context.Context, id string) error
}

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
