package sqldb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "event-registry-service/internal/domain/event"
	pkgerrors "event-registry-service/pkg/errors"
)

// EventRepository implements the event repository interface on a relational
// database through GORM, keyed by entity id. Rosters travel with the event
// row as a JSON column.
type EventRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewEventRepository creates a new sql-backed event repository.
func NewEventRepository(db *gorm.DB, log *zap.Logger) *EventRepository {
	return &EventRepository{db: db, log: log}
}

// Save upserts the event row by primary key.
func (r *EventRepository) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if e == nil {
		return nil, errors.New("event cannot be nil")
	}

	model := eventToSchema(e)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model).Error
	if err != nil {
		r.log.Error("failed to save event in db", zap.Error(err), zap.String("id", e.ID))
		return nil, pkgerrors.NewStorageUnavailableError("failed to save event", err)
	}

	r.log.Info("event saved in db", zap.String("id", e.ID),
		zap.Int("participants", len(e.Participants)))
	return e, nil
}

// GetByID retrieves an event by its unique id.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var model EventSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("event not found", zap.String("id", id))
			return nil, pkgerrors.NewNotFoundError("event", fmt.Sprintf("event not found: id=%s", id))
		}
		r.log.Error("failed to get event from db", zap.Error(err), zap.String("id", id))
		return nil, pkgerrors.NewStorageUnavailableError("failed to get event", err)
	}

	e := schemaToEvent(model)
	return &e, nil
}

// List retrieves all events in insertion order.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var models []EventSchema
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		r.log.Error("failed to list events from db", zap.Error(err))
		return nil, pkgerrors.NewStorageUnavailableError("failed to list events", err)
	}

	events := make([]domain.Event, len(models))
	for i, model := range models {
		events[i] = schemaToEvent(model)
	}

	return events, nil
}

// DeleteByID removes an event by id. A missing id is a no-op success.
func (r *EventRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&EventSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete event in db", zap.Error(err), zap.String("id", id))
		return pkgerrors.NewStorageUnavailableError("failed to delete event", err)
	}

	r.log.Info("event deleted in db", zap.String("id", id))
	return nil
}
