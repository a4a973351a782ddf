package repository

import (
	"context"
	"rex-go/internal/model"

	"gorm.io/gorm"
)

// ConversationRepository 定义会话与消息的持久化操作。
type ConversationRepository interface {
	// FindBySessionID 返回该 sessionId 下 id 最小的会话。
	FindBySessionID(ctx context.Context, sessionID string) (*model.Conversation, error)
	FindByID(ctx context.Context, id uint) (*model.Conversation, error)
	Create(ctx context.Context, conversation *model.Conversation) error
	// List 按创建时间倒序返回全部会话。
	List(ctx context.Context) ([]model.Conversation, error)
	// CountMessages 返回 conversationID -> 消息条数。
	CountMessages(ctx context.Context, conversationIDs []uint) (map[uint]int64, error)

	AddMessage(ctx context.Context, message *model.Message) error
	// ListMessages 按时间正序返回会话的全部消息。
	ListMessages(ctx context.Context, conversationID uint) ([]model.Message, error)
	// RecentMessages 返回最近 limit 条消息，仍按时间正序排列。
	RecentMessages(ctx context.Context, conversationID uint, limit int) ([]model.Message, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id ASC").First(&conversation).Error
	if err != nil {
		return nil, translateError("find conversation by session", err)
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, id).Error; err != nil {
		return nil, translateError("find conversation", err)
	}
	return &conversation, nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	return translateError("create conversation", r.db.WithContext(ctx).Create(conversation).Error)
}

func (r *conversationRepository) List(ctx context.Context) ([]model.Conversation, error) {
	conversations := make([]model.Conversation, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&conversations).Error
	return conversations, translateError("list conversations", err)
}

func (r *conversationRepository) CountMessages(ctx context.Context, conversationIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ConversationID uint
		Total          int64
	}
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Select("conversation_id, COUNT(*) AS total").
		Where("conversation_id IN ?", conversationIDs).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError("count messages", err)
	}
	for _, row := range rows {
		counts[row.ConversationID] = row.Total
	}
	return counts, nil
}

func (r *conversationRepository) AddMessage(ctx context.Context, message *model.Message) error {
	return translateError("create message", r.db.WithContext(ctx).Create(message).Error)
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uint) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error
	return messages, translateError("list messages", err)
}

func (r *conversationRepository) RecentMessages(ctx context.Context, conversationID uint, limit int) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	if limit <= 0 {
		return messages, nil
	}
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, translateError("list recent messages", err)
	}
	// 反转为时间正序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
