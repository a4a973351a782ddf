package llm

import (
	"context"
	"errors"
	"fmt"
	"rex-go/internal/config"
	"rex-go/pkg/log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

type geminiGenerator struct {
	client *genai.Client
	cfg    config.LLMConfig
}

// NewClient 根据配置创建基于 Gemini 的 Client。未配置 API key 时返回一个总是走兜底回复的 Client。
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	if cfg.APIKey == "" {
		log.Warnf("未配置 llm.api_key，所有回复将使用兜底文本")
		return New(unconfigured{}), nil
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return New(&geminiGenerator{client: gc, cfg: cfg}), nil
}

func (g *geminiGenerator) model() *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.cfg.Model)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	}
	gen := g.cfg.Generation
	if gen.Temperature != 0 {
		model.SetTemperature(float32(gen.Temperature))
	}
	if gen.TopP != 0 {
		model.SetTopP(float32(gen.TopP))
	}
	if gen.MaxTokens != 0 {
		model.SetMaxOutputTokens(int32(gen.MaxTokens))
	}
	return model
}

// GenerateText 发送单轮提示词，拼接第一个候选中的全部文本片段。
func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}
