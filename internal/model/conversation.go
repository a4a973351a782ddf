package model

import "time"

// MessageRole 区分对话双方。
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Conversation 代表一次聊天会话，按客户端生成的 sessionId 查找。
// session_id 不做唯一约束，按 id 升序的第一条记录为准。
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(128);index;not null" json:"sessionId"`
	UserID    *uint     `gorm:"index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message 是会话中的一轮发言，创建后不再修改。
type Message struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ConversationID uint          `gorm:"index;not null" json:"conversationId"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
	Content        string        `gorm:"type:text;not null" json:"content"`
	Role           MessageRole   `gorm:"type:varchar(16);not null" json:"role"`
	EmotionalTone  *string       `gorm:"type:text" json:"emotionalTone"`
	Intent         *string       `gorm:"type:text" json:"intent"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}

// ConversationSummary 是后台会话列表中的一行。
type ConversationSummary struct {
	Conversation
	MessageCount int64  `json:"messageCount"`
	Summary      string `json:"summary,omitempty"`
}
