package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/model"
)

func newMessageFixture(t *testing.T) (*MessageService, *memMessageStore, *memEventPublisher) {
	t.Helper()
	users := newMemUserStore()
	seedUsers(t, users, "alice", "bob", "carol")
	messages := newMemMessageStore(users)
	events := &memEventPublisher{}
	return NewMessageService(users, messages, events), messages, events
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newMessageFixture(t)

	message, err := svc.Send(ctx, SendMessageInput{
		FromUsername: "alice",
		ToUsername:   "bob",
		Body:         "hello bob",
	})
	require.NoError(t, err)
	assert.NotZero(t, message.ID)
	assert.Equal(t, "alice", message.FromUsername)
	assert.Equal(t, "bob", message.ToUsername)
	assert.False(t, message.SentAt.IsZero())
	assert.Nil(t, message.ReadAt)

	published := events.published()
	require.Len(t, published, 1)
	assert.Equal(t, model.EventMessageSent, published[0].Kind)
	assert.Equal(t, message.ID, published[0].MessageID)
	assert.Equal(t, "alice", published[0].Actor)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMessageFixture(t)

	_, err := svc.Send(ctx, SendMessageInput{FromUsername: "alice", ToUsername: "nobody", Body: "hi"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Send(ctx, SendMessageInput{FromUsername: "nobody", ToUsername: "bob", Body: "hi"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Send(ctx, SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendMessageSurvivesPublisherOutage(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	seedUsers(t, users, "alice", "bob")
	svc := NewMessageService(users, newMemMessageStore(users), &memEventPublisher{err: errors.New("broker down")})

	message, err := svc.Send(ctx, SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "hi"})
	require.NoError(t, err, "event publishing is best effort")
	assert.NotZero(t, message.ID)
}

func TestGetMessageParticipantsOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMessageFixture(t)

	message, err := svc.Send(ctx, SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "hi"})
	require.NoError(t, err)

	for _, caller := range []string{"alice", "bob"} {
		detail, err := svc.Get(ctx, message.ID, caller)
		require.NoError(t, err)
		assert.Equal(t, "alice", detail.FromUser.Username)
		assert.Equal(t, "bob", detail.ToUser.Username)
		assert.Nil(t, detail.ReadAt)
	}

	_, err = svc.Get(ctx, message.ID, "carol")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.Get(ctx, 9999, "alice")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMarkReadRecipientOnlyAndIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newMessageFixture(t)

	message, err := svc.Send(ctx, SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "hi"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, message.ID, "alice")
	assert.ErrorIs(t, err, ErrNotRecipient, "sender cannot mark read")

	receipt, err := svc.MarkRead(ctx, message.ID, "bob")
	require.NoError(t, err)
	require.NotNil(t, receipt.ReadAt)
	firstReadAt := *receipt.ReadAt

	again, err := svc.MarkRead(ctx, message.ID, "bob")
	require.NoError(t, err)
	require.NotNil(t, again.ReadAt)
	assert.Equal(t, firstReadAt, *again.ReadAt, "read_at is set at most once")

	var readEvents int
	for _, event := range events.published() {
		if event.Kind == model.EventMessageRead {
			readEvents++
		}
	}
	assert.Equal(t, 1, readEvents, "only the null to timestamp transition publishes")

	_, err = svc.MarkRead(ctx, 9999, "bob")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
