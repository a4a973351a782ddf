package service

import (
	"context"
	"errors"
	"rex-go/internal/model"
	"rex-go/internal/repository"
)

// ContentInput 是创建内容条目所需的字段，Status 为空时默认为 draft。
type ContentInput struct {
	Title      string
	Content    string
	Status     model.ContentStatus
	CategoryID uint
}

// ContentPatch 只包含需要修改的字段。
type ContentPatch struct {
	Title      *string
	Content    *string
	Status     *model.ContentStatus
	CategoryID *uint
}

// ContentService 定义参考内容的业务操作。
type ContentService interface {
	List(ctx context.Context) ([]model.ContentEntry, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.ContentEntry, error)
	Get(ctx context.Context, id uint) (*model.ContentEntry, error)
	Create(ctx context.Context, in ContentInput) (*model.ContentEntry, error)
	Update(ctx context.Context, id uint, patch ContentPatch) (*model.ContentEntry, error)
	Delete(ctx context.Context, id uint) error
}

type contentService struct {
	repo         repository.ContentRepository
	categoryRepo repository.CategoryRepository
}

// NewContentService 创建一个新的 ContentService 实例。
func NewContentService(repo repository.ContentRepository, categoryRepo repository.CategoryRepository) ContentService {
	return &contentService{repo: repo, categoryRepo: categoryRepo}
}

func (s *contentService) List(ctx context.Context) ([]model.ContentEntry, error) {
	return s.repo.List(ctx)
}

func (s *contentService) ListByCategory(ctx context.Context, categoryID uint) ([]model.ContentEntry, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *contentService) Get(ctx context.Context, id uint) (*model.ContentEntry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *contentService) Create(ctx context.Context, in ContentInput) (*model.ContentEntry, error) {
	category, err := s.requireCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = model.ContentDraft
	}
	entry := &model.ContentEntry{
		Title:      in.Title,
		Content:    in.Content,
		Status:     status,
		CategoryID: in.CategoryID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	entry.Category = category
	return entry, nil
}

func (s *contentService) Update(ctx context.Context, id uint, patch ContentPatch) (*model.ContentEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil && *patch.CategoryID != entry.CategoryID {
		category, err := s.requireCategory(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		entry.CategoryID = category.ID
		entry.Category = category
	}
	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Content != nil {
		entry.Content = *patch.Content
	}
	if patch.Status != nil {
		entry.Status = *patch.Status
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *contentService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *contentService) requireCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnknownCategory
	}
	return category, err
}
