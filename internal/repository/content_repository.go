package repository

import (
	"context"
	"rex-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentRepository 定义参考内容条目的持久化操作。
type ContentRepository interface {
	// List 按创建时间倒序返回全部条目，并预加载所属分类。
	List(ctx context.Context) ([]model.ContentEntry, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.ContentEntry, error)
	// Latest 返回 List 顺序下的前 limit 条，用作提示词参考内容。
	Latest(ctx context.Context, limit int) ([]model.ContentEntry, error)
	FindByID(ctx context.Context, id uint) (*model.ContentEntry, error)
	Create(ctx context.Context, entry *model.ContentEntry) error
	Update(ctx context.Context, entry *model.ContentEntry) error
	Delete(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository 创建一个新的 ContentRepository 实例。
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Order("created_at DESC").Order("id DESC")
}

func (r *contentRepository) List(ctx context.Context) ([]model.ContentEntry, error) {
	entries := make([]model.ContentEntry, 0)
	err := r.ordered(ctx).Find(&entries).Error
	return entries, translateError("list content entries", err)
}

func (r *contentRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.ContentEntry, error) {
	entries := make([]model.ContentEntry, 0)
	err := r.ordered(ctx).Where("category_id = ?", categoryID).Find(&entries).Error
	return entries, translateError("list content entries by category", err)
}

func (r *contentRepository) Latest(ctx context.Context, limit int) ([]model.ContentEntry, error) {
	entries := make([]model.ContentEntry, 0)
	if limit <= 0 {
		return entries, nil
	}
	err := r.ordered(ctx).Limit(limit).Find(&entries).Error
	return entries, translateError("list latest content entries", err)
}

func (r *contentRepository) FindByID(ctx context.Context, id uint) (*model.ContentEntry, error) {
	var entry model.ContentEntry
	if err := r.db.WithContext(ctx).Preload("Category").First(&entry, id).Error; err != nil {
		return nil, translateError("find content entry", err)
	}
	return &entry, nil
}

func (r *contentRepository) Create(ctx context.Context, entry *model.ContentEntry) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
	return translateError("create content entry", err)
}

func (r *contentRepository) Update(ctx context.Context, entry *model.ContentEntry) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entry).Error
	return translateError("update content entry", err)
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return deleteResult("delete content entry", r.db.WithContext(ctx).Delete(&model.ContentEntry{}, id))
}
