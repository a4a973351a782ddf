package service

import (
	"context"
	"fmt"
	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/pkg/llm"
	"rex-go/pkg/log"
)

// AdminService 接口定义了后台会话审阅相关的操作。
type AdminService interface {
	ListConversations(ctx context.Context) ([]model.ConversationSummary, error)
	// SummarizeConversation 调用模型生成摘要并写入缓存。
	SummarizeConversation(ctx context.Context, conversationID uint) (string, error)
}

type adminService struct {
	conversationRepo repository.ConversationRepository
	summaryCache     repository.SummaryCache
	llmClient        llm.Client
	personaName      string
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(conversationRepo repository.ConversationRepository, summaryCache repository.SummaryCache, llmClient llm.Client, personaName string) AdminService {
	if personaName == "" {
		personaName = "Rex"
	}
	return &adminService{
		conversationRepo: conversationRepo,
		summaryCache:     summaryCache,
		llmClient:        llmClient,
		personaName:      personaName,
	}
}

// ListConversations 按创建时间倒序返回会话，附带消息数与缓存的摘要。
// 缓存不可用时只记录日志，列表仍然返回。
func (s *adminService) ListConversations(ctx context.Context) ([]model.ConversationSummary, error) {
	conversations, err := s.conversationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(conversations))
	for i, c := range conversations {
		ids[i] = c.ID
	}

	counts, err := s.conversationRepo.CountMessages(ctx, ids)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summaryCache.GetMany(ctx, ids)
	if err != nil {
		log.Warnf("读取会话摘要缓存失败: %v", err)
		summaries = map[uint]string{}
	}

	result := make([]model.ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, model.ConversationSummary{
			Conversation: c,
			MessageCount: counts[c.ID],
			Summary:      summaries[c.ID],
		})
	}
	return result, nil
}

func (s *adminService) SummarizeConversation(ctx context.Context, conversationID uint) (string, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return "", err
	}
	messages, err := s.conversationRepo.ListMessages(ctx, conversation.ID)
	if err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}

	summary, err := s.llmClient.Summarize(ctx, FormatTranscript(messages, s.personaName))
	if err != nil {
		log.Error("生成会话摘要失败", err)
		return "", fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	if err := s.summaryCache.Set(ctx, conversation.ID, summary); err != nil {
		log.Warnf("写入会话摘要缓存失败: %v", err)
	}
	return summary, nil
}
