package blobstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"event-registry-service/internal/collection"
	domain "event-registry-service/internal/domain/event"
	pkgerrors "event-registry-service/pkg/errors"
)

// EventCollectionKey is the blob holding the entire event collection,
// participant rosters included.
const EventCollectionKey = "events/events.json"

// EventRepository persists events as a single whole-collection blob, the
// same read-modify-write cycle as UserRepository.
type EventRepository struct {
	store *collection.Store
	log   *zap.Logger
	mu    sync.Mutex
}

// NewEventRepository creates a blob-backed event repository.
func NewEventRepository(store *collection.Store, log *zap.Logger) *EventRepository {
	return &EventRepository{store: store, log: log}
}

// Save upserts the event, preserving collection ordering on replace.
func (r *EventRepository) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := collection.Load[domain.Event](ctx, r.store, EventCollectionKey)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = *e
			replaced = true
			break
		}
	}
	if !replaced {
		events = append(events, *e)
	}

	if err := collection.Save(ctx, r.store, EventCollectionKey, events); err != nil {
		return nil, err
	}

	r.log.Info("event saved", zap.String("id", e.ID), zap.Bool("replaced", replaced),
		zap.Int("participants", len(e.Participants)))
	return e, nil
}

// GetByID returns the first event whose id matches.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	events, err := collection.Load[domain.Event](ctx, r.store, EventCollectionKey)
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID == id {
			e := events[i]
			return &e, nil
		}
	}

	return nil, pkgerrors.NewNotFoundError("event", fmt.Sprintf("event not found: id=%s", id))
}

// List returns the full event collection verbatim.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return collection.Load[domain.Event](ctx, r.store, EventCollectionKey)
}

// DeleteByID removes every event matching id. Deleting a non-existent id is
// a no-op success.
func (r *EventRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := collection.Load[domain.Event](ctx, r.store, EventCollectionKey)
	if err != nil {
		return err
	}

	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if len(kept) == len(events) {
		r.log.Debug("delete of absent event is a no-op", zap.String("id", id))
		return nil
	}

	if err := collection.Save(ctx, r.store, EventCollectionKey, kept); err != nil {
		return err
	}

	r.log.Info("event deleted", zap.String("id", id))
	return nil
}
