package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"event-registry-service/internal/adapter/cache"
	domain "event-registry-service/internal/domain/user"
	"event-registry-service/internal/usecase/user"
)

// UserRepository implements user.Repository with cache-aside reads.
// Mutations always hit the backing repository so the storage contract is
// untouched; the cache only short-circuits GetByID.
type UserRepository struct {
	backing user.Repository
	cache   cache.EntityCache[domain.User]
	log     *zap.Logger
	group   singleflight.Group
}

// NewUserRepository wraps a backing repository with a cache.
func NewUserRepository(backing user.Repository, c cache.EntityCache[domain.User], log *zap.Logger) *UserRepository {
	return &UserRepository{
		backing: backing,
		cache:   c,
		log:     log,
	}
}

// Save delegates to the backing repository and invalidates the cache.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	saved, err := r.backing.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, u.ID); err != nil {
		r.log.Warn("failed to invalidate cache after save", zap.String("id", u.ID), zap.Error(err))
	}

	return saved, nil
}

// GetByID retrieves a user using the cache-aside pattern. Concurrent misses
// for the same id collapse into one backing-store load.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	cached, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to store", zap.String("id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	result, err, _ := r.group.Do("user:"+id, func() (any, error) {
		// Another request may have populated the cache while we waited
		if cached, err := r.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}

		u, err := r.backing.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, id, u); err != nil {
			r.log.Warn("failed to cache user", zap.String("id", id), zap.Error(err))
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// List delegates to the backing repository.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.backing.List(ctx)
}

// DeleteByID delegates to the backing repository and invalidates the cache.
func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.backing.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache after delete", zap.String("id", id), zap.Error(err))
	}

	return nil
}
