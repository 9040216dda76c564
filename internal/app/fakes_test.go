package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"messagely/internal/model"
)

// In-memory stores mirroring the repository semantics closely enough for
// service tests: nil for not-found, ordered listings, null-guarded
// mark-read.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = *user
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := user
	return &copied, nil
}

func (s *memUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *memUserStore) TouchLastLogin(_ context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil
	}
	user.LastLoginAt = at
	s.users[username] = user
	return nil
}

type memMessageStore struct {
	mu       sync.Mutex
	nextID   uint
	messages map[uint]model.Message
	users    *memUserStore
}

func newMemMessageStore(users *memUserStore) *memMessageStore {
	return &memMessageStore{messages: make(map[uint]model.Message), users: users}
}

func (s *memMessageStore) Create(_ context.Context, message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	message.ID = s.nextID
	s.messages[message.ID] = *message
	return nil
}

func (s *memMessageStore) GetByID(ctx context.Context, id uint) (*model.Message, error) {
	s.mu.Lock()
	message, ok := s.messages[id]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	copied := message
	copied.FromUser, _ = s.users.GetByUsername(ctx, message.FromUsername)
	copied.ToUser, _ = s.users.GetByUsername(ctx, message.ToUsername)
	return &copied, nil
}

func (s *memMessageStore) ListFrom(ctx context.Context, username string) ([]model.Message, error) {
	return s.list(ctx, func(m model.Message) bool { return m.FromUsername == username })
}

func (s *memMessageStore) ListTo(ctx context.Context, username string) ([]model.Message, error) {
	return s.list(ctx, func(m model.Message) bool { return m.ToUsername == username })
}

func (s *memMessageStore) list(ctx context.Context, match func(model.Message) bool) ([]model.Message, error) {
	s.mu.Lock()
	var out []model.Message
	for _, message := range s.messages {
		if match(message) {
			out = append(out, message)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	for i := range out {
		out[i].FromUser, _ = s.users.GetByUsername(ctx, out[i].FromUsername)
		out[i].ToUser, _ = s.users.GetByUsername(ctx, out[i].ToUsername)
	}
	return out, nil
}

func (s *memMessageStore) MarkRead(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.messages[id]
	if !ok || message.ReadAt != nil {
		return nil
	}
	message.ReadAt = &at
	s.messages[id] = message
	return nil
}

type memEventPublisher struct {
	mu     sync.Mutex
	events []model.MessageEvent
	err    error
}

func (p *memEventPublisher) Publish(_ context.Context, event model.MessageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *memEventPublisher) published() []model.MessageEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.MessageEvent(nil), p.events...)
}
