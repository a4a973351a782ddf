package model

import "time"

// CategoryType 是分类的固定枚举。
type CategoryType string

const (
	CategoryEarlyReflections        CategoryType = "early_reflections"
	CategoryProfessionalJourney     CategoryType = "professional_journey"
	CategoryPersonalGrowth          CategoryType = "personal_growth"
	CategoryRelationshipReflections CategoryType = "relationship_reflections"
	CategoryPhilosophy              CategoryType = "philosophy"
	CategoryCreative                CategoryType = "creative"
	CategoryOther                   CategoryType = "other"
)

// Category 是参考内容的主题分组。
type Category struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Type        CategoryType `gorm:"type:varchar(64);not null" json:"type"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}
