package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"messagely/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return wrap("create message", err)
	}
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrap("query message by id", err)
	}
	return &message, nil
}

// ListFrom returns messages sent by the user with the recipient preloaded,
// so the directory never has to resolve counterparties one by one.
func (r *MessageRepository) ListFrom(ctx context.Context, username string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("ToUser").
		Where("from_username = ?", username).
		Order("sent_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, wrap("list messages from user", err)
	}
	return messages, nil
}

// ListTo is the symmetric read with the sender preloaded.
func (r *MessageRepository) ListTo(ctx context.Context, username string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Where("to_username = ?", username).
		Order("sent_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, wrap("list messages to user", err)
	}
	return messages, nil
}

// MarkRead advances read_at from null to the given timestamp. The null guard
// in the WHERE clause makes repeated and concurrent calls idempotent: only
// the first transition writes, every later call matches zero rows.
func (r *MessageRepository) MarkRead(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at)
	if result.Error != nil {
		return wrap("mark message read", result.Error)
	}
	return nil
}
