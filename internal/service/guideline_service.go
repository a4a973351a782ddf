package service

import (
	"context"
	"rex-go/internal/model"
	"rex-go/internal/repository"
)

// GuidelineInput 是创建指令所需的字段，IsActive 为 nil 时默认启用。
type GuidelineInput struct {
	Title    string
	Content  string
	Priority int
	IsActive *bool
}

// GuidelinePatch 只包含需要修改的字段。
type GuidelinePatch struct {
	Title    *string
	Content  *string
	Priority *int
	IsActive *bool
}

// GuidelineService 定义模型指令的业务操作。
type GuidelineService interface {
	List(ctx context.Context) ([]model.AiGuideline, error)
	ListActive(ctx context.Context) ([]model.AiGuideline, error)
	Get(ctx context.Context, id uint) (*model.AiGuideline, error)
	Create(ctx context.Context, in GuidelineInput) (*model.AiGuideline, error)
	Update(ctx context.Context, id uint, patch GuidelinePatch) (*model.AiGuideline, error)
	Delete(ctx context.Context, id uint) error
}

type guidelineService struct {
	repo repository.GuidelineRepository
}

// NewGuidelineService 创建一个新的 GuidelineService 实例。
func NewGuidelineService(repo repository.GuidelineRepository) GuidelineService {
	return &guidelineService{repo: repo}
}

func (s *guidelineService) List(ctx context.Context) ([]model.AiGuideline, error) {
	return s.repo.List(ctx)
}

func (s *guidelineService) ListActive(ctx context.Context) ([]model.AiGuideline, error) {
	return s.repo.ListActive(ctx)
}

func (s *guidelineService) Get(ctx context.Context, id uint) (*model.AiGuideline, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *guidelineService) Create(ctx context.Context, in GuidelineInput) (*model.AiGuideline, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	guideline := &model.AiGuideline{
		Title:    in.Title,
		Content:  in.Content,
		Priority: in.Priority,
		IsActive: active,
	}
	if err := s.repo.Create(ctx, guideline); err != nil {
		return nil, err
	}
	return guideline, nil
}

func (s *guidelineService) Update(ctx context.Context, id uint, patch GuidelinePatch) (*model.AiGuideline, error) {
	guideline, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		guideline.Title = *patch.Title
	}
	if patch.Content != nil {
		guideline.Content = *patch.Content
	}
	if patch.Priority != nil {
		guideline.Priority = *patch.Priority
	}
	if patch.IsActive != nil {
		guideline.IsActive = *patch.IsActive
	}
	if err := s.repo.Update(ctx, guideline); err != nil {
		return nil, err
	}
	return guideline, nil
}

func (s *guidelineService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
