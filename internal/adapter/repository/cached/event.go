package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"event-registry-service/internal/adapter/cache"
	domain "event-registry-service/internal/domain/event"
	"event-registry-service/internal/usecase/event"
)

// EventRepository implements event.Repository with cache-aside reads,
// mirroring the user wrapper. Roster mutations go through Save and so
// always invalidate.
type EventRepository struct {
	backing event.Repository
	cache   cache.EntityCache[domain.Event]
	log     *zap.Logger
	group   singleflight.Group
}

// NewEventRepository wraps a backing repository with a cache.
func NewEventRepository(backing event.Repository, c cache.EntityCache[domain.Event], log *zap.Logger) *EventRepository {
	return &EventRepository{
		backing: backing,
		cache:   c,
		log:     log,
	}
}

// Save delegates to the backing repository and invalidates the cache.
func (r *EventRepository) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	saved, err := r.backing.Save(ctx, e)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, e.ID); err != nil {
		r.log.Warn("failed to invalidate cache after save", zap.String("id", e.ID), zap.Error(err))
	}

	return saved, nil
}

// GetByID retrieves an event using the cache-aside pattern.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	cached, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to store", zap.String("id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	result, err, _ := r.group.Do("event:"+id, func() (any, error) {
		if cached, err := r.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}

		e, err := r.backing.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, id, e); err != nil {
			r.log.Warn("failed to cache event", zap.String("id", id), zap.Error(err))
		}

		return e, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Event), nil
}

// List delegates to the backing repository.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return r.backing.List(ctx)
}

// DeleteByID delegates to the backing repository and invalidates the cache.
func (r *EventRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.backing.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache after delete", zap.String("id", id), zap.Error(err))
	}

	return nil
}
