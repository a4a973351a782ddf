// Package router 组装 Gin 引擎与全部路由。
package router

import (
	"rex-go/internal/handler"
	"rex-go/internal/middleware"
	"rex-go/internal/service"
	"rex-go/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Dependencies 是构建路由所需的全部服务。
type Dependencies struct {
	UserService         service.UserService
	CategoryService     service.CategoryService
	ContentService      service.ContentService
	GuidelineService    service.GuidelineService
	ChatService         service.ChatService
	ConversationService service.ConversationService
	AdminService        service.AdminService

	DB          *gorm.DB
	Redis       *redis.Client
	CORSOrigins []string
}

// New 创建 Gin 引擎并注册 /api 下的全部路由。
func New(deps Dependencies) *gin.Engine {
	handler.RegisterValidatorTagNames()

	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(
		middleware.RequestLogger(),
		gin.Recovery(),
		monitoring.MetricsMiddleware(),
		middleware.CORS(deps.CORSOrigins),
	)

	userHandler := handler.NewUserHandler(deps.UserService)
	authHandler := handler.NewAuthHandler(deps.UserService)
	categoryHandler := handler.NewCategoryHandler(deps.CategoryService)
	contentHandler := handler.NewContentHandler(deps.ContentService)
	guidelineHandler := handler.NewGuidelineHandler(deps.GuidelineService)
	chatHandler := handler.NewChatHandler(deps.ChatService)
	conversationHandler := handler.NewConversationHandler(deps.ConversationService)
	adminHandler := handler.NewAdminHandler(deps.AdminService)

	authed := middleware.AuthMiddleware(deps.UserService)
	adminAuth := middleware.AdminAuthMiddleware()
	// 需要管理员权限的写操作：未登录 401，非管理员 403
	requireAdmin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authed, adminAuth, h}
	}

	r.GET("/metrics", monitoring.PrometheusHandler())

	api := r.Group("/api")
	{
		api.GET("/health", handler.NewHealthHandler(deps.DB, deps.Redis).Check)

		// 账号
		api.POST("/register", userHandler.Register)
		api.POST("/login", userHandler.Login)
		api.POST("/logout", authed, userHandler.Logout)
		api.GET("/user", authed, userHandler.GetProfile)
		api.POST("/auth/refreshToken", authHandler.RefreshToken)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.POST("", requireAdmin(categoryHandler.Create)...)
			categories.PUT("/:id", requireAdmin(categoryHandler.Update)...)
			categories.DELETE("/:id", requireAdmin(categoryHandler.Delete)...)
		}

		content := api.Group("/content")
		{
			content.GET("", contentHandler.List)
			content.GET("/category/:id", contentHandler.ListByCategory)
			content.GET("/:id", contentHandler.Get)
			content.POST("", requireAdmin(contentHandler.Create)...)
			content.PUT("/:id", requireAdmin(contentHandler.Update)...)
			content.DELETE("/:id", requireAdmin(contentHandler.Delete)...)
		}

		conversation := api.Group("/conversation")
		{
			conversation.POST("/message", chatHandler.SendMessage)
			conversation.GET("/ws", chatHandler.Socket)
			conversation.GET("/:sessionId/messages", conversationHandler.GetMessages)
			conversation.GET("/:sessionId/emotional-journey", conversationHandler.GetEmotionalJourney)
		}

		guidelines := api.Group("/ai-guidelines")
		{
			guidelines.GET("/active", guidelineHandler.ListActive)
			guidelines.GET("", requireAdmin(guidelineHandler.List)...)
			guidelines.GET("/:id", requireAdmin(guidelineHandler.Get)...)
			guidelines.POST("", requireAdmin(guidelineHandler.Create)...)
			guidelines.PUT("/:id", requireAdmin(guidelineHandler.Update)...)
			guidelines.DELETE("/:id", requireAdmin(guidelineHandler.Delete)...)
		}

		admin := api.Group("/admin", authed, adminAuth)
		{
			admin.GET("/conversations", adminHandler.ListConversations)
			admin.POST("/conversations/:id/summary", adminHandler.SummarizeConversation)
		}
	}

	return r
}
