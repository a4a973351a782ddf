package model

import "time"

// ContentStatus 表示参考内容的发布状态。
type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
	ContentArchived  ContentStatus = "archived"
)

// ContentEntry 是一段用于约束模型回复的参考文本，必须归属于某个 Category。
type ContentEntry struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Title      string        `gorm:"type:varchar(255);not null" json:"title"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	Status     ContentStatus `gorm:"type:varchar(32);not null" json:"status"`
	CategoryID uint          `gorm:"not null;index" json:"categoryId"`
	Category   *Category     `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ContentEntry) TableName() string {
	return "content_entries"
}
