package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/model"
)

func seedUsers(t *testing.T, users *memUserStore, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		require.NoError(t, users.Create(context.Background(), &model.User{
			Username:    username,
			Password:    "hashed",
			FirstName:   "First-" + username,
			LastName:    "Last-" + username,
			Phone:       "+1415555" + username,
			JoinAt:      time.Now(),
			LastLoginAt: time.Now(),
		}))
	}
}

func TestAllOrderedByUsername(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	seedUsers(t, users, "carol", "alice", "bob")
	svc := NewUserService(users, newMemMessageStore(users), nil)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)
	assert.Equal(t, "carol", all[2].Username)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	seedUsers(t, users, "alice")
	svc := NewUserService(users, newMemMessageStore(users), nil)

	user, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.JoinAt.IsZero())

	_, err = svc.Get(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMessagesFromAndTo(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	seedUsers(t, users, "alice", "bob", "carol")
	messages := newMemMessageStore(users)
	svc := NewUserService(users, messages, nil)

	base := time.Now()
	require.NoError(t, messages.Create(ctx, &model.Message{
		FromUsername: "alice", ToUsername: "bob", Body: "second", SentAt: base.Add(time.Second),
	}))
	require.NoError(t, messages.Create(ctx, &model.Message{
		FromUsername: "alice", ToUsername: "carol", Body: "first", SentAt: base,
	}))
	require.NoError(t, messages.Create(ctx, &model.Message{
		FromUsername: "bob", ToUsername: "alice", Body: "reply", SentAt: base.Add(2 * time.Second),
	}))

	sent, err := svc.MessagesFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "first", sent[0].Body, "sent messages ordered by sent_at")
	assert.Equal(t, "carol", sent[0].ToUser.Username)
	assert.Equal(t, "bob", sent[1].ToUser.Username)

	received, err := svc.MessagesTo(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "reply", received[0].Body)
	assert.Equal(t, "bob", received[0].FromUser.Username)
	assert.Equal(t, "First-bob", received[0].FromUser.FirstName)

	_, err = svc.MessagesFrom(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.MessagesTo(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
