package service

import (
	"context"
	"errors"
	"fmt"
	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/pkg/llm"
	"rex-go/pkg/log"
	"rex-go/pkg/monitoring"
	"strings"

	"github.com/google/uuid"
)

// ChatResult 是一次消息处理的结果，同时也是 POST /api/conversation/message 的响应体。
type ChatResult struct {
	Message        *model.Message `json:"message"`
	SessionID      string         `json:"sessionId"`
	ConversationID uint           `json:"conversationId"`
}

// ChatOptions 控制提示词中的人设名称与上下文窗口大小。
type ChatOptions struct {
	PersonaName    string
	HistoryWindow  int
	GroundingLimit int
}

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	// HandleIncomingMessage 保存用户消息、调用模型并保存回复。
	// sessionID 为空时生成一个新的会话标识。模型失败不会返回错误，存储失败会。
	HandleIncomingMessage(ctx context.Context, sessionID, text string) (*ChatResult, error)
}

type chatService struct {
	conversationRepo repository.ConversationRepository
	contentRepo      repository.ContentRepository
	guidelineRepo    repository.GuidelineRepository
	llmClient        llm.Client
	opts             ChatOptions
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(
	conversationRepo repository.ConversationRepository,
	contentRepo repository.ContentRepository,
	guidelineRepo repository.GuidelineRepository,
	llmClient llm.Client,
	opts ChatOptions,
) ChatService {
	if opts.PersonaName == "" {
		opts.PersonaName = "Rex"
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 5
	}
	if opts.GroundingLimit <= 0 {
		opts.GroundingLimit = 5
	}
	return &chatService{
		conversationRepo: conversationRepo,
		contentRepo:      contentRepo,
		guidelineRepo:    guidelineRepo,
		llmClient:        llmClient,
		opts:             opts,
	}
}

func (s *chatService) HandleIncomingMessage(ctx context.Context, sessionID, text string) (*ChatResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// 1. 解析或创建会话
	conversation, err := s.resolveConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 2. 保存用户消息，tone/intent 为空
	userMessage := &model.Message{
		ConversationID: conversation.ID,
		Content:        text,
		Role:           model.RoleUser,
	}
	if err := s.conversationRepo.AddMessage(ctx, userMessage); err != nil {
		return nil, err
	}

	// 3. 最近几轮对话（包含刚保存的用户消息）
	recent, err := s.conversationRepo.RecentMessages(ctx, conversation.ID, s.opts.HistoryWindow)
	if err != nil {
		return nil, err
	}

	// 4. 参考内容：按列表顺序取前几条，不做相关性排序
	entries, err := s.contentRepo.Latest(ctx, s.opts.GroundingLimit)
	if err != nil {
		return nil, err
	}

	// 5. 启用中的指令，已按 priority/title 排好序
	guidelines, err := s.guidelineRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// 6-7. 组装提示词并调用模型，单次尝试
	analysis := s.llmClient.Analyze(ctx, llm.PromptInput{
		PersonaName: s.opts.PersonaName,
		Message:     text,
		Context:     FormatTranscript(recent, s.opts.PersonaName),
		Grounding:   formatGrounding(entries),
		Guidelines:  toPromptGuidelines(guidelines),
	})
	monitoring.ObserveLLMOutcome(string(analysis.Outcome))

	// 8. 保存模型回复
	tone, intent := analysis.EmotionalTone, analysis.Intent
	reply := &model.Message{
		ConversationID: conversation.ID,
		Content:        analysis.Response,
		Role:           model.RoleAssistant,
		EmotionalTone:  &tone,
		Intent:         &intent,
	}
	if err := s.conversationRepo.AddMessage(ctx, reply); err != nil {
		return nil, err
	}

	log.Infow("消息处理完成",
		"sessionId", sessionID,
		"conversationId", conversation.ID,
		"outcome", analysis.Outcome,
		"emotionalTone", tone,
	)

	// 9. 返回
	return &ChatResult{
		Message:        reply,
		SessionID:      sessionID,
		ConversationID: conversation.ID,
	}, nil
}

// resolveConversation 并发下同一 sessionId 可能创建出两条会话，之后的查找以 id 最小者为准。
func (s *chatService) resolveConversation(ctx context.Context, sessionID string) (*model.Conversation, error) {
	conversation, err := s.conversationRepo.FindBySessionID(ctx, sessionID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	conversation = &model.Conversation{SessionID: sessionID}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("create conversation for session %s: %w", sessionID, err)
	}
	return conversation, nil
}

// FormatTranscript 把消息格式化为每行一条的 "User: ..." / "<persona>: ..." 文本。
func FormatTranscript(messages []model.Message, persona string) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		speaker := "User"
		if m.Role == model.RoleAssistant {
			speaker = persona
		}
		lines = append(lines, speaker+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func formatGrounding(entries []model.ContentEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, "TOPIC: "+e.Title+"\n"+e.Content)
	}
	return strings.Join(blocks, "\n\n")
}

func toPromptGuidelines(guidelines []model.AiGuideline) []llm.Guideline {
	out := make([]llm.Guideline, 0, len(guidelines))
	for _, g := range guidelines {
		out = append(out, llm.Guideline{Title: g.Title, Content: g.Content})
	}
	return out
}
