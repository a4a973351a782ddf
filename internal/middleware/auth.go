// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"rex-go/internal/service"
	"rex-go/pkg/log"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserKey 是 AuthMiddleware 写入 *model.User 的上下文键。
	ContextUserKey = "user"
	// ContextClaimsKey 是 AuthMiddleware 写入 *token.CustomClaims 的上下文键。
	ContextClaimsKey = "claims"
)

// AuthMiddleware 创建一个 Gin 中间件，用于 JWT 认证。
// 它会从请求头中提取 token，校验签名、类型与黑名单，并将完整的 User 对象存入 Gin 的上下文中。
func AuthMiddleware(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		user, claims, err := userService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			log.Warnf("AuthMiddleware: 认证失败, path: %s, error: %v", c.FullPath(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// BearerToken 从 Authorization 请求头中取出 "Bearer <token>" 里的 token。
func BearerToken(c *gin.Context) (string, bool) {
	const bearerPrefix = "Bearer "
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	return tokenString, tokenString != ""
}
