package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rex-go/internal/model"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{name: "未登录", user: nil, want: http.StatusUnauthorized},
		{name: "普通用户", user: &model.User{Username: "u"}, want: http.StatusForbidden},
		{name: "管理员", user: &model.User{Username: "a", IsAdmin: true}, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", withUser(tt.user), AdminAuthMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "Bearer   ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", tt.header)
		got, ok := BearerToken(c)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestRequestLoggerKeepsBody(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	defer log.ReplaceLogger(zap.New(core))()

	r := gin.New()
	r.Use(RequestLogger())
	var seen string
	handler := func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		seen = string(b)
		c.Status(http.StatusOK)
	}
	r.POST("/api/content", handler)
	r.POST("/api/login", handler)
	r.POST("/api/register", handler)
	r.POST("/api/auth/refreshToken", handler)

	tests := []struct {
		path   string
		body   string
		logged bool
	}{
		{path: "/api/content", body: `{"title":"visible-title"}`, logged: true},
		{path: "/api/login", body: `{"password":"SECRET-PASSWORD"}`, logged: false},
		{path: "/api/register", body: `{"password":"SECRET-PASSWORD"}`, logged: false},
		{path: "/api/auth/refreshToken", body: `{"refreshToken":"SECRET-REFRESH-TOKEN"}`, logged: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			logs.TakeAll()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusOK, w.Code)
			// 处理函数总能读到完整请求体
			assert.Equal(t, tt.body, seen)

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			fields := fmt.Sprint(entries[0].ContextMap())
			if tt.logged {
				assert.Contains(t, fields, "visible-title")
			} else {
				assert.NotContains(t, fields, "SECRET")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://rex.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://rex.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://rex.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
