package blobstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"event-registry-service/internal/collection"
	domain "event-registry-service/internal/domain/user"
	pkgerrors "event-registry-service/pkg/errors"
)

// UserCollectionKey is the blob holding the entire user collection.
const UserCollectionKey = "users/users.json"

// UserRepository persists users as a single whole-collection blob. Every
// mutation loads the collection, rewrites it in memory and saves it back in
// full. The mutex serializes that cycle per collection within this process;
// writers in other processes remain last-write-wins.
type UserRepository struct {
	store *collection.Store
	log   *zap.Logger
	mu    sync.Mutex
}

// NewUserRepository creates a blob-backed user repository.
func NewUserRepository(store *collection.Store, log *zap.Logger) *UserRepository {
	return &UserRepository{store: store, log: log}
}

// Save upserts the user: a matching id is replaced at its current position
// so collection ordering is preserved, otherwise the user is appended.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := collection.Load[domain.User](ctx, r.store, UserCollectionKey)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = *u
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, *u)
	}

	if err := collection.Save(ctx, r.store, UserCollectionKey, users); err != nil {
		return nil, err
	}

	r.log.Info("user saved", zap.String("id", u.ID), zap.Bool("replaced", replaced))
	return u, nil
}

// GetByID returns the first user whose id matches.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := collection.Load[domain.User](ctx, r.store, UserCollectionKey)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}

	return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
}

// List returns the full user collection verbatim.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return collection.Load[domain.User](ctx, r.store, UserCollectionKey)
}

// DeleteByID removes every user matching id (at most one, by the uniqueness
// invariant). Deleting a non-existent id is a no-op success.
func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := collection.Load[domain.User](ctx, r.store, UserCollectionKey)
	if err != nil {
		return err
	}

	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}

	if len(kept) == len(users) {
		r.log.Debug("delete of absent user is a no-op", zap.String("id", id))
		return nil
	}

	if err := collection.Save(ctx, r.store, UserCollectionKey, kept); err != nil {
		return err
	}

	r.log.Info("user deleted", zap.String("id", id))
	return nil
}
