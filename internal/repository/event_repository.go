package repository

import (
	"context"

	"gorm.io/gorm"

	"messagely/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.MessageEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return wrap("create message event", err)
	}
	return nil
}
