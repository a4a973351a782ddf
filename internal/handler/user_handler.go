package handler

import (
	"errors"
	"net/http"
	"rex-go/internal/middleware"
	"rex-go/internal/model"
	"rex-go/internal/service"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责处理注册、登录、登出等账号相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 接受用户名或邮箱之一。
type LoginRequest struct {
	Username string `json:"username" binding:"required_without=Email"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 是登录成功的响应体。
type LoginResponse struct {
	service.AuthTokens
	User *model.User `json:"user"`
}

// Register 处理用户注册请求，新账号不具备管理员权限。
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			log.Warnf("Register: 用户 '%s' 注册失败, error: %v", req.Username, err)
			c.JSON(http.StatusConflict, ErrorResponse{Message: "Username or email already exists"})
			return
		}
		renderError(c, err, "User")
		return
	}

	log.Infof("User '%s' registered successfully", user.Username)
	c.JSON(http.StatusCreated, user)
}

// Login 处理用户登录请求。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	identifier := req.Username
	if req.Email != "" {
		identifier = req.Email
	}

	tokens, user, err := h.userService.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warnf("Login: 用户 '%s' 认证失败", identifier)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"})
			return
		}
		renderError(c, err, "User")
		return
	}

	log.Infof("User '%s' logged in successfully", user.Username)
	c.JSON(http.StatusOK, LoginResponse{AuthTokens: *tokens, User: user})
}

// GetProfile 返回当前登录用户，用户由 AuthMiddleware 注入。
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout 将当前 access token 加入黑名单。
func (h *UserHandler) Logout(c *gin.Context) {
	tokenString, _ := middleware.BearerToken(c)
	if err := h.userService.Logout(c.Request.Context(), tokenString); err != nil {
		log.Error("Logout: Failed to logout", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		log.Infof("User '%s' logged out successfully", user.Username)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
