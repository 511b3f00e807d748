package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/models"
	"campusmarket/internal/storage/memstore"
)

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts unread", func(t *testing.T) {
		svc := NewMessageService(memstore.New())

		msg, err := svc.Send(ctx, NewMessageInput{
			SenderID:   "alice",
			ReceiverID: "bob",
			Content:    "Is the lamp still for sale?",
		})
		require.NoError(t, err)
		assert.False(t, msg.IsRead)
		assert.NotEmpty(t, msg.ID)
	})

	t.Run("Validation failures", func(t *testing.T) {
		svc := NewMessageService(memstore.New())

		tests := []struct {
			name string
			in   NewMessageInput
		}{
			{"Missing sender", NewMessageInput{ReceiverID: "bob", Content: "hi"}},
			{"Missing receiver", NewMessageInput{SenderID: "alice", Content: "hi"}},
			{"Missing content", NewMessageInput{SenderID: "alice", ReceiverID: "bob"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Send(ctx, tt.in)
				require.Error(t, err)

				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			})
		}
	})
}

func TestMessageService_Threads(t *testing.T) {
	ctx := context.Background()
	svc := NewMessageService(memstore.New())

	send := func(from, to, content string) *models.Message {
		msg, err := svc.Send(ctx, NewMessageInput{SenderID: from, ReceiverID: to, Content: content})
		require.NoError(t, err)
		return msg
	}

	send("alice", "bob", "Is the bike available?")
	send("bob", "alice", "Yes, come by tomorrow.")
	send("carol", "alice", "Different thread.")

	t.Run("Conversation is symmetric", func(t *testing.T) {
		ab, err := svc.Conversation(ctx, "alice", "bob")
		require.NoError(t, err)
		require.Len(t, ab, 2)
		assert.Equal(t, "Is the bike available?", ab[0].Content)

		ba, err := svc.Conversation(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("Inbox covers both directions", func(t *testing.T) {
		inbox, err := svc.Inbox(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, inbox, 3)
	})

	t.Run("Empty conversation returns empty list, not null", func(t *testing.T) {
		msgs, err := svc.Conversation(ctx, "nobody", "noone")
		require.NoError(t, err)
		assert.NotNil(t, msgs)
		assert.Empty(t, msgs)
	})
}

func TestMessageService_MarkRead(t *testing.T) {
	ctx := context.Background()
	svc := NewMessageService(memstore.New())

	msg, err := svc.Send(ctx, NewMessageInput{
		SenderID:   "alice",
		ReceiverID: "bob",
		Content:    "Ping",
	})
	require.NoError(t, err)

	read, err := svc.MarkRead(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	_, err = svc.MarkRead(ctx, "missing")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
