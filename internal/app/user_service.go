package app

import (
	"context"
	"time"

	"messagely/internal/model"
)

type UserService struct {
	users    UserStore
	messages MessageStore
	cache    DirectoryCache
}

// SentMessage is a message as seen from its sender's outbox, with the
// recipient's counterparty projection embedded.
type SentMessage struct {
	ID     uint              `json:"id"`
	ToUser model.UserSummary `json:"to_user"`
	Body   string            `json:"body"`
	SentAt time.Time         `json:"sent_at"`
	ReadAt *time.Time        `json:"read_at"`
}

// ReceivedMessage is the symmetric inbox view with the sender embedded.
type ReceivedMessage struct {
	ID       uint              `json:"id"`
	FromUser model.UserSummary `json:"from_user"`
	Body     string            `json:"body"`
	SentAt   time.Time         `json:"sent_at"`
	ReadAt   *time.Time        `json:"read_at"`
}

func NewUserService(users UserStore, messages MessageStore, cache DirectoryCache) *UserService {
	return &UserService{
		users:    users,
		messages: messages,
		cache:    cache,
	}
}

// All returns the directory listing ordered by username.
func (s *UserService) All(ctx context.Context) ([]model.UserSummary, error) {
	if s.cache != nil {
		if cached, hit, err := s.cache.GetAll(ctx); err == nil && hit {
			return cached, nil
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	if s.cache != nil {
		_ = s.cache.SetAll(ctx, summaries)
	}
	return summaries, nil
}

// Get returns the full projection of one user.
func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// MessagesFrom returns every message the user has sent, recipient joined in.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]SentMessage, error) {
	if _, err := s.Get(ctx, username); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListFrom(ctx, username)
	if err != nil {
		return nil, err
	}

	out := make([]SentMessage, 0, len(messages))
	for _, m := range messages {
		item := SentMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
		}
		if m.ToUser != nil {
			item.ToUser = m.ToUser.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}

// MessagesTo returns every message the user has received, sender joined in.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]ReceivedMessage, error) {
	if _, err := s.Get(ctx, username); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListTo(ctx, username)
	if err != nil {
		return nil, err
	}

	out := make([]ReceivedMessage, 0, len(messages))
	for _, m := range messages {
		item := ReceivedMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
		}
		if m.FromUser != nil {
			item.FromUser = m.FromUser.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}
