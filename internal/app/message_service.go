package app

import (
	"context"
	"log"
	"strings"
	"time"

	"messagely/internal/model"
)

type MessageService struct {
	users    UserStore
	messages MessageStore
	events   EventPublisher
}

type SendMessageInput struct {
	FromUsername string
	ToUsername   string
	Body         string
}

// MessageDetail is the full view of one message with both participants
// resolved, so clients never need a second lookup.
type MessageDetail struct {
	ID       uint              `json:"id"`
	Body     string            `json:"body"`
	SentAt   time.Time         `json:"sent_at"`
	ReadAt   *time.Time        `json:"read_at"`
	FromUser model.UserSummary `json:"from_user"`
	ToUser   model.UserSummary `json:"to_user"`
}

// ReadReceipt is the response shape of a mark-read call.
type ReadReceipt struct {
	ID     uint       `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

func NewMessageService(users UserStore, messages MessageStore, events EventPublisher) *MessageService {
	return &MessageService{
		users:    users,
		messages: messages,
		events:   events,
	}
}

// Send persists a new unread message from the caller to the named recipient.
func (s *MessageService) Send(ctx context.Context, input SendMessageInput) (*model.Message, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrInvalidInput
	}

	for _, username := range []string{input.FromUsername, input.ToUsername} {
		user, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
	}

	message := &model.Message{
		FromUsername: input.FromUsername,
		ToUsername:   input.ToUsername,
		Body:         body,
		SentAt:       time.Now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, model.MessageEvent{
		MessageID:  message.ID,
		Kind:       model.EventMessageSent,
		Actor:      message.FromUsername,
		OccurredAt: message.SentAt,
	})
	return message, nil
}

// Get returns the full detail of a message. Only the sender and the
// recipient may see it.
func (s *MessageService) Get(ctx context.Context, id uint, caller string) (*MessageDetail, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	if caller != message.FromUsername && caller != message.ToUsername {
		return nil, ErrNotParticipant
	}

	detail := &MessageDetail{
		ID:     message.ID,
		Body:   message.Body,
		SentAt: message.SentAt,
		ReadAt: message.ReadAt,
	}
	if message.FromUser != nil {
		detail.FromUser = message.FromUser.Summary()
	}
	if message.ToUser != nil {
		detail.ToUser = message.ToUser.Summary()
	}
	return detail, nil
}

// MarkRead advances read_at once, recipient only. Repeated calls return the
// original timestamp unchanged.
func (s *MessageService) MarkRead(ctx context.Context, id uint, caller string) (*ReadReceipt, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	if caller != message.ToUsername {
		return nil, ErrNotRecipient
	}

	if message.ReadAt == nil {
		now := time.Now()
		if err := s.messages.MarkRead(ctx, id, now); err != nil {
			return nil, err
		}
		// Reload rather than trusting our own timestamp: a concurrent call
		// may have won the null-guarded update.
		message, err = s.messages.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if message == nil {
			return nil, ErrMessageNotFound
		}

		s.publishEvent(ctx, model.MessageEvent{
			MessageID:  id,
			Kind:       model.EventMessageRead,
			Actor:      caller,
			OccurredAt: now,
		})
	}

	return &ReadReceipt{ID: message.ID, ReadAt: message.ReadAt}, nil
}

// Event publishing is best effort: a broker outage must not fail the
// request that triggered the event.
func (s *MessageService) publishEvent(ctx context.Context, event model.MessageEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("publish message event failed: %v", err)
	}
}
