package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelIDIsDeterministic(t *testing.T) {
	a := ChannelID("f1", "i1", "42")
	assert.Equal(t, "chat_f1_i1_42", a)
	assert.Equal(t, a, ChannelID("f1", "i1", "42"))
	assert.NotEqual(t, a, ChannelID("i1", "f1", "42"), "field order matters")
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, created := f.chats.GetOrCreate(ctx, f.founder.ID, f.investor.ID, f.idea.ID)
	assert.True(t, created)
	assert.Empty(t, first.Messages)

	second, created := f.chats.GetOrCreate(ctx, f.founder.ID, f.investor.ID, f.idea.ID)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Len(t, f.store.Chats.All(ctx), 1)
}

func TestAppendMessageKeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ch, _ := f.chats.GetOrCreate(ctx, f.founder.ID, f.investor.ID, f.idea.ID)

	for _, body := range []string{"hello", "hi there", "shall we talk terms?"} {
		_, ok := f.chats.AppendMessage(ctx, ch.ID, f.founder.ID, f.founder.Name, body)
		require.True(t, ok)
	}

	got, ok := f.chats.Get(ctx, ch.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "hello", got.Messages[0].Body)
	assert.Equal(t, "shall we talk terms?", got.Messages[2].Body)
	assert.Equal(t, "Ada Founder", got.Messages[0].SenderName)
	assert.NotEqual(t, got.Messages[0].ID, got.Messages[1].ID)
}

func TestAppendMessageToUnknownChatIsDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, ok := f.chats.AppendMessage(ctx, "chat_nobody", f.founder.ID, f.founder.Name, "hello?")
	assert.False(t, ok)
	assert.Empty(t, f.store.Chats.All(ctx))
}

func TestForUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chats.GetOrCreate(ctx, f.founder.ID, f.investor.ID, f.idea.ID)
	f.chats.GetOrCreate(ctx, "f2", "i2", "other")

	assert.Len(t, f.chats.ForUser(ctx, f.investor.ID), 1)
	assert.Len(t, f.chats.ForUser(ctx, f.founder.ID), 1)
	assert.Empty(t, f.chats.ForUser(ctx, "stranger"))
}
