package handler

import (
	"errors"
	"net/http"
	"rex-go/internal/service"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责处理认证相关的 API 请求，例如刷新 token。
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RefreshTokenRequest 定义了刷新 token API 的请求体结构。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken 使用 refresh token 换取新的一对 token。
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.userService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warnf("RefreshToken: refresh token 无效")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid refresh token"})
			return
		}
		renderError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, tokens)
}
