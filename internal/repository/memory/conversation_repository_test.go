package memory

import (
	"context"
	"fmt"
	"testing"

	"ai-coderagent-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEnsureSessionIsIdempotent(t *testing.T) {
	repo := NewConversationRepository()
	ctx := context.Background()

	created, err := repo.EnsureSession(ctx, "s1")
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureSession(ctx, "s1")
	assert.NoError(t, err)
	assert.False(t, created)
}

func TestRecentReturnsLastNInOrder(t *testing.T) {
	repo := NewConversationRepository()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		err := repo.AppendMessage(ctx, &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: "s1",
			Role:      "user",
			Content:   fmt.Sprintf("message %d", i),
		})
		assert.NoError(t, err)
	}

	messages, err := repo.Recent(ctx, "s1", 10)
	assert.NoError(t, err)
	assert.Len(t, messages, 10)
	assert.Equal(t, "message 5", messages[0].Content)
	assert.Equal(t, "message 14", messages[9].Content)
}

func TestRecentUnknownSessionIsEmpty(t *testing.T) {
	repo := NewConversationRepository()

	messages, err := repo.Recent(context.Background(), "ghost", 10)

	assert.NoError(t, err)
	assert.Empty(t, messages)
}

func TestAppendMessageCreatesSessionImplicitly(t *testing.T) {
	repo := NewConversationRepository()
	ctx := context.Background()

	err := repo.AppendMessage(ctx, &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: "implicit",
		Role:      "assistant",
		Content:   "hi",
	})
	assert.NoError(t, err)

	created, err := repo.EnsureSession(ctx, "implicit")
	assert.NoError(t, err)
	assert.False(t, created)

	messages, _ := repo.Recent(ctx, "implicit", 5)
	assert.Len(t, messages, 1)
	assert.False(t, messages[0].CreatedAt.IsZero())
}
