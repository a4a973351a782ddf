package repository

import (
	"context"
	"fmt"
	"rex-go/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository 定义分类的持久化操作。
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	// Delete 在分类下仍有内容条目时返回 ErrCategoryInUse，不存在时返回 ErrNotFound。
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建一个新的 CategoryRepository 实例。
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List 按名称升序返回全部分类。
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&categories).Error
	return categories, translateError("list categories", err)
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError("find category", err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return translateError("create category", r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return translateError("update category", r.db.WithContext(ctx).Save(category).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries int64
		if err := tx.Model(&model.ContentEntry{}).Where("category_id = ?", id).Count(&entries).Error; err != nil {
			return translateError("count category entries", err)
		}
		if entries > 0 {
			return fmt.Errorf("delete category %d: %w", id, ErrCategoryInUse)
		}
		return deleteResult("delete category", tx.Delete(&model.Category{}, id))
	})
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&n).Error
	return n, translateError("count categories", err)
}
