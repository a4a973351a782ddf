package handler

import (
	"errors"
	"net/http"
	"rex-go/internal/service"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责后台会话审阅相关的 API 请求。
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// SummaryResponse 是生成会话摘要接口的响应体。
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ListConversations 按创建时间倒序返回全部会话，附带消息数和已缓存的摘要。
func (h *AdminHandler) ListConversations(c *gin.Context) {
	conversations, err := h.adminService.ListConversations(c.Request.Context())
	if err != nil {
		renderError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// SummarizeConversation 请求模型为会话生成摘要。
func (h *AdminHandler) SummarizeConversation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.adminService.SummarizeConversation(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
	case errors.Is(err, service.ErrEmptyConversation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Conversation has no messages"})
	case errors.Is(err, service.ErrSummaryUnavailable):
		log.Warnf("SummarizeConversation: 会话 %d 摘要生成失败: %v", id, err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: "Summary unavailable"})
	default:
		renderError(c, err, "Conversation")
	}
}
