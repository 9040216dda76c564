package app

import (
	"context"
	"time"

	"messagely/internal/model"
)

// UserStore is the persistence surface the services need for users.
// Satisfied by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	TouchLastLogin(ctx context.Context, username string, at time.Time) error
}

// MessageStore is the persistence surface for messages.
// Satisfied by repository.MessageRepository.
type MessageStore interface {
	Create(ctx context.Context, message *model.Message) error
	GetByID(ctx context.Context, id uint) (*model.Message, error)
	ListFrom(ctx context.Context, username string) ([]model.Message, error)
	ListTo(ctx context.Context, username string) ([]model.Message, error)
	MarkRead(ctx context.Context, id uint, at time.Time) error
}

// EventPublisher hands message lifecycle events to the async pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, event model.MessageEvent) error
}

// DirectoryCache caches the ordered user listing. Optional; services treat
// a nil cache as a permanent miss.
type DirectoryCache interface {
	GetAll(ctx context.Context) ([]model.UserSummary, bool, error)
	SetAll(ctx context.Context, users []model.UserSummary) error
	Invalidate(ctx context.Context) error
}
