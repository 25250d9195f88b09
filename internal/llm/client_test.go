package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedClient(t *testing.T) (*GeminiClient, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	client, err := NewGeminiClient(context.Background(),
		NewConfig("gemini-test-flash", "gemini-test-pro"),
		"test-key",
		WithLogger(zap.New(core)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, logs
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestNewGeminiClient_NoAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "  ")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGeminiClient_LogsResolvedModelPerTier(t *testing.T) {
	client, logs := newObservedClient(t)

	_, err := client.GenerateJSON(cancelledContext(), "suggest careers", TierAdvanced)
	require.Error(t, err)
	_, err = client.GenerateContent(cancelledContext(), "hello", TierStandard)
	require.Error(t, err)

	requests := logs.FilterMessage("llm request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, "gemini-test-pro", requests[0].ContextMap()["model"])
	assert.Equal(t, "gemini-test-flash", requests[1].ContextMap()["model"])
}

func TestGeminiClient_ChatLogsModelAndHistory(t *testing.T) {
	client, logs := newObservedClient(t)

	_, err := client.Chat(cancelledContext(), ChatRequest{
		System:      "You are a future data scientist.",
		History:     []Message{{Role: RoleUser, Content: "hi"}, {Role: "assistant", Content: "hey"}},
		Message:     "how did you start?",
		Temperature: 0.7,
	})
	require.Error(t, err)

	chats := logs.FilterMessage("llm chat").All()
	require.Len(t, chats, 1)
	fields := chats[0].ContextMap()
	assert.Equal(t, "gemini-test-flash", fields["model"])
	assert.EqualValues(t, 2, fields["history"])
}

func TestGeminiClient_GetModel(t *testing.T) {
	client, _ := newObservedClient(t)
	assert.Equal(t, "gemini-test-pro", client.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-test-flash", client.GetModel(ModelTier("unknown")))
}
