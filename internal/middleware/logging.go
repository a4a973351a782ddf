package middleware

import (
	"bytes"
	"io"
	"rex-go/pkg/log"
	"time"

	"github.com/gin-gonic/gin"
)

// 超过该长度的请求/响应体在日志中被截断。
const maxLoggedBody = 2048

// 这些路径的请求体包含密码或 refresh token，不写入日志。
var sensitivePaths = map[string]bool{
	"/api/login":             true,
	"/api/register":          true,
	"/api/auth/refreshToken": true,
}

// bodyLogWriter 用于捕获响应体
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 实现了 io.Writer 接口，将响应写入 gin.ResponseWriter 和一个内部的 buffer
func (w bodyLogWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger 是一个 Gin 中间件，用于记录每个请求的结构化日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		var requestBody []byte
		if c.Request.Body != nil && !sensitivePaths[path] {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// 放回请求体，后续处理函数仍可正常读取
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
		}
		if len(requestBody) > 0 {
			fields = append(fields, "requestBody", truncate(requestBody))
		}
		if c.Writer.Status() >= 400 {
			fields = append(fields, "responseBody", truncate(blw.body.Bytes()))
		}
		log.Infow("HTTP Request Log", fields...)
	}
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "..."
	}
	return string(b)
}
