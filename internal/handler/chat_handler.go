package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"rex-go/internal/service"
	"rex-go/pkg/log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// maxFrameBytes 是单个 WebSocket 帧的上限，超出时连接以 1009 关闭。
const maxFrameBytes = 64 << 10

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源
	},
}

// ChatHandler 负责聊天消息的 HTTP 与 WebSocket 入口，两者共用同一个 ChatService。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest 是 POST /api/conversation/message 以及 WebSocket JSON 帧的结构。
type SendMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId" binding:"omitempty,max=128"`
}

// SendMessage 处理一条用户消息并返回模型回复。模型失败时仍返回 200 与兜底回复。
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.chatService.HandleIncomingMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		renderError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Socket 将连接升级为 WebSocket。每个文本帧可以是 SendMessageRequest JSON，也可以是纯文本消息；
// 纯文本沿用查询参数 sessionId 或上一条回复中的 sessionId。
func (h *ChatHandler) Socket(c *gin.Context) {
	sessionID := c.Query("sessionId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	log.Infof("WebSocket 连接已建立, sessionId: %q", sessionID)
	ctx := c.Request.Context()

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("从 WebSocket 读取消息失败: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		req := decodeFrame(frame)
		if req.SessionID == "" {
			req.SessionID = sessionID
		}
		if verrs := validateFrame(&req); len(verrs) > 0 {
			if err := conn.WriteJSON(validationFailed(verrs)); err != nil {
				return
			}
			continue
		}

		result, err := h.chatService.HandleIncomingMessage(ctx, req.SessionID, req.Message)
		if err != nil {
			if writeErr := conn.WriteJSON(frameError(err)); writeErr != nil {
				return
			}
			continue
		}
		sessionID = result.SessionID
		if err := conn.WriteJSON(result); err != nil {
			log.Warnf("向 WebSocket 写入回复失败: %v", err)
			return
		}
	}
}

func decodeFrame(frame []byte) SendMessageRequest {
	trimmed := strings.TrimSpace(string(frame))
	var req SendMessageRequest
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal([]byte(trimmed), &req) == nil {
		return req
	}
	return SendMessageRequest{Message: string(frame)}
}

// validateFrame 按 SendMessageRequest 的 binding 规则校验帧。空消息不在这里报错，
// 交给 ChatService 返回 ErrEmptyMessage，与纯文本帧保持一致。
func validateFrame(req *SendMessageRequest) validator.ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(binding.Validator.ValidateStruct(req), &verrs) {
		return nil
	}
	kept := verrs[:0]
	for _, fe := range verrs {
		if fe.StructField() != "Message" {
			kept = append(kept, fe)
		}
	}
	return kept
}

func frameError(err error) ErrorResponse {
	if errors.Is(err, service.ErrEmptyMessage) {
		return ErrorResponse{Message: "Message is required"}
	}
	log.Errorf("处理 WebSocket 消息失败: %v", err)
	return ErrorResponse{Message: "Internal server error"}
}
