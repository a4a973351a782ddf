package service

import (
	"context"
	"testing"

	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/internal/testutil"
	"rex-go/pkg/llm"
	"rex-go/pkg/token"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLLM struct {
	analysis   llm.Analysis
	inputs     []llm.PromptInput
	summary    string
	summaryErr error
	transcript string
}

func (f *fakeLLM) Analyze(_ context.Context, in llm.PromptInput) llm.Analysis {
	f.inputs = append(f.inputs, in)
	return f.analysis
}

func (f *fakeLLM) Summarize(_ context.Context, transcript string) (string, error) {
	f.transcript = transcript
	return f.summary, f.summaryErr
}

func (f *fakeLLM) Close() error { return nil }

// failingLLM 模拟网络失败后客户端给出的兜底结果。
func failingLLM() *fakeLLM {
	return &fakeLLM{analysis: llm.Analysis{
		EmotionalTone: llm.DefaultTone,
		Intent:        llm.DefaultIntent,
		Response:      llm.FallbackConnectionReply,
		Outcome:       llm.OutcomeFailed,
	}}
}

func fakeAnalysis(tone string) llm.Analysis {
	return llm.Analysis{EmotionalTone: tone, Intent: "sharing", Response: "I hear you.", Outcome: llm.OutcomeParsed}
}

type fixture struct {
	db            *gorm.DB
	conversations repository.ConversationRepository
	categories    repository.CategoryRepository
	contents      repository.ContentRepository
	guidelines    repository.GuidelineRepository
	users         repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:            db,
		conversations: repository.NewConversationRepository(db),
		categories:    repository.NewCategoryRepository(db),
		contents:      repository.NewContentRepository(db),
		guidelines:    repository.NewGuidelineRepository(db),
		users:         repository.NewUserRepository(db),
	}
}

func (f *fixture) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func (f *fixture) newUserService(t *testing.T) UserService {
	t.Helper()
	_, rdb := testutil.NewRedis(t)
	return NewUserService(f.users, repository.NewTokenBlacklist(rdb), token.NewJWTManager("test-secret", 1, 7))
}

func (f *fixture) addCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Type: model.CategoryOther}
	require.NoError(t, f.categories.Create(context.Background(), c))
	return c
}
