package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"messagely/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrap("create user", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrap("query user by username", err)
	}
	return &user, nil
}

// List returns every user ordered by username. The ordering is part of the
// API contract; relying on the storage engine's default order is not.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, wrap("list users", err)
	}
	return users, nil
}

// TouchLastLogin stamps last_login_at for the given username. A username
// that matches no row is a silent no-op; callers have just authenticated.
func (r *UserRepository) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Update("last_login_at", at)
	if result.Error != nil {
		return wrap("touch last login", result.Error)
	}
	return nil
}
