package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
	closed  bool
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeGenerator) Close() error {
	f.closed = true
	return nil
}

func TestClient_Analyze(t *testing.T) {
	gen := &fakeGenerator{text: `{"emotionalTone":"happy","intent":"sharing","response":"Lovely!"}`}
	c := New(gen)

	got := c.Analyze(context.Background(), PromptInput{Message: "I got the job"})
	assert.Equal(t, Analysis{EmotionalTone: "happy", Intent: "sharing", Response: "Lovely!", Outcome: OutcomeParsed}, got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `Message: "I got the job"`)
}

func TestClient_AnalyzeFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
	c := New(gen)

	got := c.Analyze(context.Background(), PromptInput{Message: "hello"})
	assert.Equal(t, OutcomeFailed, got.Outcome)
	assert.Equal(t, DefaultTone, got.EmotionalTone)
	assert.Equal(t, DefaultIntent, got.Intent)
	assert.Equal(t, FallbackConnectionReply, got.Response)
	// 只尝试一次
	assert.Len(t, gen.prompts, 1)
}

func TestClient_Unconfigured(t *testing.T) {
	c := New(unconfigured{})
	got := c.Analyze(context.Background(), PromptInput{Message: "hello"})
	assert.Equal(t, OutcomeFailed, got.Outcome)

	_, err := c.Summarize(context.Background(), "User: hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Summarize(t *testing.T) {
	gen := &fakeGenerator{text: "  The user talked about work.  "}
	c := New(gen)

	summary, err := c.Summarize(context.Background(), "User: work is hard\nRex: tell me more")
	require.NoError(t, err)
	assert.Equal(t, "The user talked about work.", summary)
	assert.Contains(t, gen.prompts[0], "User: work is hard")

	_, err = c.Summarize(context.Background(), " ")
	assert.Error(t, err)

	gen.text = ""
	_, err = c.Summarize(context.Background(), "User: hi")
	assert.Error(t, err)

	require.NoError(t, c.Close())
	assert.True(t, gen.closed)
}
