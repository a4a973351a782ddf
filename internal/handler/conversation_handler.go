package handler

import (
	"net/http"
	"rex-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 处理会话历史相关的只读请求。
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler 创建一个新的 ConversationHandler。
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// GetMessages 返回会话的全部消息，按时间正序；未知 sessionId 返回 []。
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	messages, err := h.service.GetMessages(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		renderError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetEmotionalJourney 返回带情绪标签的消息及其颜色。
func (h *ConversationHandler) GetEmotionalJourney(c *gin.Context) {
	journey, err := h.service.GetEmotionalJourney(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		renderError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, journey)
}
