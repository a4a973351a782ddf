package service

import (
	"context"
	"testing"

	"rex-go/internal/model"
	"rex-go/pkg/emotion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationService_UnknownSession(t *testing.T) {
	f := newFixture(t)
	svc := NewConversationService(f.conversations)

	messages, err := svc.GetMessages(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)

	journey, err := svc.GetEmotionalJourney(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.NotNil(t, journey)
	assert.Empty(t, journey)

	assert.Equal(t, int64(0), f.countRows(t, &model.Conversation{}))
}

func TestConversationService_EmotionalJourney(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fake := &fakeLLM{analysis: fakeAnalysis("Joyful")}
	chat := NewChatService(f.conversations, f.contents, f.guidelines, fake, ChatOptions{})
	svc := NewConversationService(f.conversations)

	_, err := chat.HandleIncomingMessage(ctx, "s", "good news!")
	require.NoError(t, err)
	fake.analysis = fakeAnalysis("melancholy")
	_, err = chat.HandleIncomingMessage(ctx, "s", "but also this")
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx, "s")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "good news!", messages[0].Content)
	assert.Equal(t, "but also this", messages[2].Content)

	journey, err := svc.GetEmotionalJourney(ctx, "s")
	require.NoError(t, err)
	// 用户消息没有情绪标签，不出现在轨迹中
	require.Len(t, journey, 2)
	assert.Equal(t, "Joyful", journey[0].Emotion)
	assert.Equal(t, model.RoleAssistant, journey[0].Role)
	assert.Equal(t, messages[1].ID, journey[0].ID)
	assert.Equal(t, emotion.Color("joyful"), journey[0].Color)
	assert.Equal(t, emotion.Color("melancholy"), journey[1].Color)
	assert.NotEqual(t, emotion.DefaultColor, journey[0].Color)
}
