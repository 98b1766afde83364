package sqldb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "event-registry-service/internal/domain/user"
	pkgerrors "event-registry-service/pkg/errors"
)

// UserRepository implements the user repository interface on a relational
// database through GORM, keyed by entity id.
type UserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepository creates a new sql-backed user repository.
func NewUserRepository(db *gorm.DB, log *zap.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// Save upserts the user row by primary key.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := userToSchema(u)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model).Error
	if err != nil {
		r.log.Error("failed to save user in db", zap.Error(err), zap.String("id", u.ID))
		return nil, pkgerrors.NewStorageUnavailableError("failed to save user", err)
	}

	r.log.Info("user saved in db", zap.String("id", u.ID))
	return u, nil
}

// GetByID retrieves a user by their unique id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.String("id", id))
			return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, pkgerrors.NewStorageUnavailableError("failed to get user", err)
	}

	u := schemaToUser(model)
	return &u, nil
}

// List retrieves all users in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, pkgerrors.NewStorageUnavailableError("failed to list users", err)
	}

	users := make([]domain.User, len(models))
	for i, model := range models {
		users[i] = schemaToUser(model)
	}

	return users, nil
}

// DeleteByID removes a user by id. A missing id is a no-op success.
func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&UserSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.String("id", id))
		return pkgerrors.NewStorageUnavailableError("failed to delete user", err)
	}

	r.log.Info("user deleted in db", zap.String("id", id))
	return nil
}
