package service

import (
	"context"
	"fmt"
	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/pkg/log"
)

// AdminAccount 是启动时需要保证存在的管理员账号。
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// SeedService 在空库上写入默认的分类与参考内容。
type SeedService interface {
	// Seed 幂等：已有分类时跳过内容写入；admin 为 nil 或缺少密码时不创建管理员。
	Seed(ctx context.Context, admin *AdminAccount) error
}

type seedService struct {
	categoryRepo repository.CategoryRepository
	contentRepo  repository.ContentRepository
	userService  UserService
}

// NewSeedService 创建一个新的 SeedService 实例。
func NewSeedService(categoryRepo repository.CategoryRepository, contentRepo repository.ContentRepository, userService UserService) SeedService {
	return &seedService{
		categoryRepo: categoryRepo,
		contentRepo:  contentRepo,
		userService:  userService,
	}
}

func (s *seedService) Seed(ctx context.Context, admin *AdminAccount) error {
	if admin != nil && admin.Username != "" && admin.Password != "" {
		if _, err := s.userService.EnsureAdmin(ctx, admin.Username, admin.Email, admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	n, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("数据库中已有分类，跳过初始化内容")
		return nil
	}

	log.Info("正在写入默认分类与参考内容...")
	for _, seed := range defaultSeed {
		category := seed.category
		if err := s.categoryRepo.Create(ctx, &category); err != nil {
			return fmt.Errorf("seed category %q: %w", category.Name, err)
		}
		for _, entry := range seed.entries {
			entry.CategoryID = category.ID
			entry.Status = model.ContentPublished
			if err := s.contentRepo.Create(ctx, &entry); err != nil {
				return fmt.Errorf("seed content %q: %w", entry.Title, err)
			}
		}
	}
	log.Infof("初始化完成，共写入 %d 个分类", len(defaultSeed))
	return nil
}
