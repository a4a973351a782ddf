package service

import (
	"context"
	"errors"
	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/pkg/emotion"
	"time"
)

// JourneyPoint 是情绪轨迹中的一个点。
type JourneyPoint struct {
	Timestamp time.Time         `json:"timestamp"`
	Emotion   string            `json:"emotion"`
	Role      model.MessageRole `json:"role"`
	ID        uint              `json:"id"`
	Color     string            `json:"color"`
}

// ConversationService 定义了对话查询的接口。查询从不创建会话。
type ConversationService interface {
	// GetMessages 按时间正序返回会话消息，未知 sessionId 返回空切片。
	GetMessages(ctx context.Context, sessionID string) ([]model.Message, error)
	// GetEmotionalJourney 返回带情绪标签的消息，未知 sessionId 返回空切片。
	GetEmotionalJourney(ctx context.Context, sessionID string) ([]JourneyPoint, error)
}

type conversationService struct {
	repo repository.ConversationRepository
}

// NewConversationService 创建一个新的 ConversationService。
func NewConversationService(repo repository.ConversationRepository) ConversationService {
	return &conversationService{repo: repo}
}

func (s *conversationService) GetMessages(ctx context.Context, sessionID string) ([]model.Message, error) {
	conversation, err := s.repo.FindBySessionID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, conversation.ID)
}

func (s *conversationService) GetEmotionalJourney(ctx context.Context, sessionID string) ([]JourneyPoint, error) {
	messages, err := s.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	points := make([]JourneyPoint, 0, len(messages))
	for _, m := range messages {
		if m.EmotionalTone == nil || *m.EmotionalTone == "" {
			continue
		}
		points = append(points, JourneyPoint{
			Timestamp: m.CreatedAt,
			Emotion:   *m.EmotionalTone,
			Role:      m.Role,
			ID:        m.ID,
			Color:     emotion.Color(*m.EmotionalTone),
		})
	}
	return points, nil
}
