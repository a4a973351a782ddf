package service

import (
	"context"
	"errors"
	"fmt"
	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/pkg/hash"
	"rex-go/pkg/log"
	"rex-go/pkg/token"
	"strings"
	"time"
)

// AuthTokens 是登录与刷新接口返回的一对 token。
type AuthTokens struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Login 接受用户名或邮箱作为登录标识。
	Login(ctx context.Context, identifier, password string) (*AuthTokens, *model.User, error)
	GetProfile(ctx context.Context, username string) (*model.User, error)
	// Authenticate 校验 access token（含黑名单）并返回对应用户。
	Authenticate(ctx context.Context, accessToken string) (*model.User, *token.CustomClaims, error)
	Logout(ctx context.Context, accessToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error)
	// EnsureAdmin 保证存在一个管理员账号，已存在时只补齐管理员标记。
	EnsureAdmin(ctx context.Context, username, email, password string) (*model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	blacklist  repository.TokenBlacklist
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, blacklist repository.TokenBlacklist, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		blacklist:  blacklist,
		jwtManager: jwtManager,
	}
}

// Register 创建一个普通（非管理员）账号。
func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return s.create(ctx, username, email, password, false)
}

func (s *userService) create(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  isAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, identifier, password string) (*AuthTokens, *model.User, error) {
	var user *model.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindByEmail(ctx, identifier)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *userService) issue(user *model.User) (*AuthTokens, error) {
	access, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func (s *userService) Authenticate(ctx context.Context, accessToken string) (*model.User, *token.CustomClaims, error) {
	claims, err := s.jwtManager.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, nil, err
	}
	revoked, err := s.blacklist.Contains(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, ErrTokenRevoked
	}
	// 以数据库为准，管理员标记可能在签发后被修改
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout 将 token 加入 Redis 黑名单，过期时间取 token 的剩余有效期。
func (s *userService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtManager.VerifyAccessToken(accessToken)
	if err != nil {
		return err
	}
	return s.blacklist.Add(ctx, accessToken, time.Until(claims.ExpiresAt.Time))
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *userService) EnsureAdmin(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin {
			existing.IsAdmin = true
			if err := s.userRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			log.Infof("已将用户 '%s' 提升为管理员", username)
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	user, err := s.create(ctx, username, email, password, true)
	if err != nil {
		return nil, err
	}
	log.Infof("已创建管理员账号 '%s'", username)
	return user, nil
}
