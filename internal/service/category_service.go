package service

import (
	"context"
	"rex-go/internal/model"
	"rex-go/internal/repository"
)

// CategoryInput 是创建分类所需的字段。
type CategoryInput struct {
	Name        string
	Description string
	Type        model.CategoryType
}

// CategoryPatch 只包含需要修改的字段，nil 表示保持原值。
type CategoryPatch struct {
	Name        *string
	Description *string
	Type        *model.CategoryType
}

// CategoryService 定义分类的业务操作。
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, in CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uint, patch CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建一个新的 CategoryService 实例。
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	category := &model.Category{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, patch CategoryPatch) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.Type != nil {
		category.Type = *patch.Type
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 拒绝删除仍被内容条目引用的分类。
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
