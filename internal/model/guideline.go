package model

import "time"

// AiGuideline 是注入每次模型调用的管理员指令，priority 越大越靠前。
type AiGuideline struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Priority  int       `gorm:"not null" json:"priority"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (AiGuideline) TableName() string {
	return "ai_guidelines"
}
