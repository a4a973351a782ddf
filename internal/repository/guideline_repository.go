package repository

import (
	"context"
	"rex-go/internal/model"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// GuidelineRepository 定义模型指令的持久化操作。
// 列表结果统一按 priority 降序、title 升序排列。
type GuidelineRepository interface {
	List(ctx context.Context) ([]model.AiGuideline, error)
	ListActive(ctx context.Context) ([]model.AiGuideline, error)
	FindByID(ctx context.Context, id uint) (*model.AiGuideline, error)
	Create(ctx context.Context, guideline *model.AiGuideline) error
	Update(ctx context.Context, guideline *model.AiGuideline) error
	Delete(ctx context.Context, id uint) error
}

type guidelineRepository struct {
	db *gorm.DB
}

// NewGuidelineRepository 创建一个新的 GuidelineRepository 实例。
func NewGuidelineRepository(db *gorm.DB) GuidelineRepository {
	return &guidelineRepository{db: db}
}

func (r *guidelineRepository) List(ctx context.Context) ([]model.AiGuideline, error) {
	guidelines := make([]model.AiGuideline, 0)
	if err := r.db.WithContext(ctx).Find(&guidelines).Error; err != nil {
		return nil, translateError("list guidelines", err)
	}
	SortGuidelines(guidelines)
	return guidelines, nil
}

func (r *guidelineRepository) ListActive(ctx context.Context) ([]model.AiGuideline, error) {
	guidelines := make([]model.AiGuideline, 0)
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&guidelines).Error; err != nil {
		return nil, translateError("list active guidelines", err)
	}
	SortGuidelines(guidelines)
	return guidelines, nil
}

func (r *guidelineRepository) FindByID(ctx context.Context, id uint) (*model.AiGuideline, error) {
	var guideline model.AiGuideline
	if err := r.db.WithContext(ctx).First(&guideline, id).Error; err != nil {
		return nil, translateError("find guideline", err)
	}
	return &guideline, nil
}

func (r *guidelineRepository) Create(ctx context.Context, guideline *model.AiGuideline) error {
	return translateError("create guideline", r.db.WithContext(ctx).Create(guideline).Error)
}

func (r *guidelineRepository) Update(ctx context.Context, guideline *model.AiGuideline) error {
	return translateError("update guideline", r.db.WithContext(ctx).Save(guideline).Error)
}

func (r *guidelineRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult("delete guideline", r.db.WithContext(ctx).Delete(&model.AiGuideline{}, id))
}

// SortGuidelines 在内存中按 priority 降序、title 升序排序。
// title 按语言无关的排序规则比较，大小写不影响先后（"apple" 排在 "Banana" 之前）。
func SortGuidelines(guidelines []model.AiGuideline) {
	// Collator 不是并发安全的，每次排序单独创建
	titles := collate.New(language.Und)
	sort.SliceStable(guidelines, func(i, j int) bool {
		if guidelines[i].Priority != guidelines[j].Priority {
			return guidelines[i].Priority > guidelines[j].Priority
		}
		return titles.CompareString(guidelines[i].Title, guidelines[j].Title) < 0
	})
}
