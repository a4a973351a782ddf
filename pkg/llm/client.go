// Package llm 封装外部大语言模型：组装提示词、调用模型，并从自由文本中解析出结构化结果。
package llm

import (
	"context"
	"errors"
	"rex-go/pkg/log"
	"strings"
)

const (
	DefaultTone   = "neutral"
	DefaultIntent = "question"

	// 模型调用本身失败时的固定回复。
	FallbackConnectionReply = "I apologize, but I'm having trouble connecting with my thoughts right now. Could we try again in a moment?"
	// 模型返回了内容但无法提取出回复时使用。
	FallbackUnparsedReply = "Thank you for your message. I'm experiencing some difficulty processing right now, but I appreciate your patience."
	// JSON 解析成功但 response 字段为空时使用。
	FallbackEmptyResponseReply = "I'm sorry, I couldn't generate a proper response at the moment."
)

// ErrNotConfigured 在未配置 API key 时由占位生成器返回。
var ErrNotConfigured = errors.New("llm api key not configured")

// Outcome 标记一次分析结果的可信程度。
type Outcome string

const (
	OutcomeParsed   Outcome = "parsed"   // JSON 块完整解析，三个字段齐全
	OutcomePartial  Outcome = "partial"  // 部分字段来自默认值或片段提取
	OutcomeUnparsed Outcome = "unparsed" // 只能把原始文本当作回复
	OutcomeFailed   Outcome = "failed"   // 调用失败，使用固定回复
)

// Analysis 是一次消息分析的结果，字段总是非空。
type Analysis struct {
	EmotionalTone string
	Intent        string
	Response      string
	Outcome       Outcome
}

// Generator 把完整提示词发送给模型并返回原始文本。
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Client 是对话编排使用的模型客户端。
type Client interface {
	// Analyze 从不返回错误：任何失败都会被转换为带默认标签的兜底回复。
	Analyze(ctx context.Context, in PromptInput) Analysis
	// Summarize 为后台生成会话摘要。
	Summarize(ctx context.Context, transcript string) (string, error)
	Close() error
}

type client struct {
	gen Generator
}

// New 基于给定的 Generator 创建 Client。
func New(gen Generator) Client {
	return &client{gen: gen}
}

// Analyze 组装提示词并调用模型，单次尝试，不重试。
func (c *client) Analyze(ctx context.Context, in PromptInput) Analysis {
	text, err := c.gen.GenerateText(ctx, BuildPrompt(in))
	if err != nil {
		log.Error("调用语言模型失败", err)
		return Analysis{
			EmotionalTone: DefaultTone,
			Intent:        DefaultIntent,
			Response:      FallbackConnectionReply,
			Outcome:       OutcomeFailed,
		}
	}

	result := ParseOutput(text)
	if result.Outcome != OutcomeParsed {
		log.Warnw("模型输出未能完整解析", "outcome", result.Outcome, "rawLength", len(text))
	}
	return result
}

// Summarize 请求模型用两三句话概括一段对话记录。
func (c *client) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("empty transcript")
	}
	text, err := c.gen.GenerateText(ctx, BuildSummaryPrompt(transcript))
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(text)
	if summary == "" {
		return "", errors.New("model returned an empty summary")
	}
	return summary, nil
}

func (c *client) Close() error {
	return c.gen.Close()
}

// unconfigured 在没有 API key 时使用，使服务仍可启动并返回兜底回复。
type unconfigured struct{}

func (unconfigured) GenerateText(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (unconfigured) Close() error { return nil }
