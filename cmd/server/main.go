// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"rex-go/internal/config"
	"rex-go/internal/repository"
	"rex-go/internal/router"
	"rex-go/internal/service"
	"rex-go/pkg/database"
	"rex-go/pkg/llm"
	"rex-go/pkg/log"
	"rex-go/pkg/monitoring"
	"rex-go/pkg/token"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "./configs/config.yaml"
	if p := os.Getenv("REX_CONFIG"); p != "" {
		configPath = p
	}

	// 1. 初始化配置
	config.Init(configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(log.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")
	monitoring.Init()

	// 3. 初始化数据库和 Redis
	database.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err := repository.AutoMigrate(database.DB); err != nil {
		log.Fatal("数据库迁移失败", err)
	}

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	contentRepo := repository.NewContentRepository(database.DB)
	guidelineRepo := repository.NewGuidelineRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB)
	summaryCache := repository.NewSummaryCache(database.RDB)
	blacklist := repository.NewTokenBlacklist(database.RDB)

	// 5. 初始化 Service (依赖注入)
	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatal("初始化模型客户端失败", err)
	}
	defer llmClient.Close()

	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	userService := service.NewUserService(userRepo, blacklist, jwtManager)
	chatService := service.NewChatService(conversationRepo, contentRepo, guidelineRepo, llmClient, service.ChatOptions{
		PersonaName:    cfg.Chat.PersonaName,
		HistoryWindow:  cfg.Chat.HistoryWindow,
		GroundingLimit: cfg.Chat.GroundingLimit,
	})

	// 6. 写入初始数据
	if cfg.Seed.Enabled {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		err := service.NewSeedService(categoryRepo, contentRepo, userService).Seed(seedCtx, &service.AdminAccount{
			Username: cfg.Seed.AdminUsername,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		})
		cancelSeed()
		if err != nil {
			log.Error("写入初始数据失败", err)
		}
	}

	// 7. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := router.New(router.Dependencies{
		UserService:         userService,
		CategoryService:     service.NewCategoryService(categoryRepo),
		ContentService:      service.NewContentService(contentRepo, categoryRepo),
		GuidelineService:    service.NewGuidelineService(guidelineRepo),
		ChatService:         chatService,
		ConversationService: service.NewConversationService(conversationRepo),
		AdminService:        service.NewAdminService(conversationRepo, summaryCache, llmClient, cfg.Chat.PersonaName),
		DB:                  database.DB,
		Redis:               database.RDB,
		CORSOrigins:         cfg.Server.CORSOrigins,
	})

	// 8. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
	}
	if err := database.RDB.Close(); err != nil {
		log.Warnf("关闭 Redis 连接失败: %v", err)
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("服务已优雅关闭")
}
