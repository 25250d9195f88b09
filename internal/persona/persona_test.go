package persona

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerview/internal/llm"
	"github.com/jonathan/careerview/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	ChatFunc func(ctx context.Context, req llm.ChatRequest) (string, error)
	requests []llm.ChatRequest
}

func (m *MockLLMClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "", nil
}
func (m *MockLLMClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	m.requests = append(m.requests, req)
	return m.ChatFunc(ctx, req)
}

func (m *MockLLMClient) GetModel(llm.ModelTier) string { return "mock-model" }
func (m *MockLLMClient) Close() error                  { return nil }

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestChat(client llm.Client) *Chat {
	return NewChat(client,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "conv-1" }),
	)
}

func TestNewFutureSelf(t *testing.T) {
	p := NewFutureSelf("ux_designer", nil)
	assert.Equal(t, "ux_designer", p.ID)
	assert.Equal(t, "ux_designer", p.PersonaID)
	assert.Equal(t, "Your Future Self - Ux Designer", p.Name)
	assert.Equal(t, "Future You as a Ux Designer", p.Title)
	assert.Equal(t, "Working as a Ux Designer", p.DailyTasks[0])
	assert.Len(t, p.Advice, 4)

	p = NewFutureSelf("career_2", &types.CareerMatch{Title: "Urban Planner"})
	assert.Equal(t, "Urban Planner", p.Role)
	assert.Contains(t, p.Background, "transitioning to Urban Planner")
}

func TestTextingStyle(t *testing.T) {
	tests := map[string]string{
		"Hey! I totally get that, trust me.":          "hey i totally get that trust me",
		"I think you should update your portfolio.":   "i think u should update ur portfolio",
		"You're   gonna love this part... \"really\"": "youre gonna love this part really",
		"Honestly, youll figure it out; it's fine :)": "honestly ull figure it out its fine",
		"  Café & résumé tips — 100%  ":               "café résumé tips 100",
	}
	for in, want := range tests {
		assert.Equal(t, want, TextingStyle(in), in)
	}
}

func TestReply(t *testing.T) {
	client := &MockLLMClient{ChatFunc: func(context.Context, llm.ChatRequest) (string, error) {
		return "Hey! Trust me, you will love it.", nil
	}}
	info := &types.CareerMatch{
		Title:         "Data Analyst",
		MatchedSkills: []string{"Excel", "SQL"},
		MissingSkills: []string{"Tableau"},
	}

	var history []types.ChatTurn
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, types.ChatTurn{Role: role, Content: "turn"})
	}

	resp := newTestChat(client).Reply(context.Background(), types.ChatRequest{
		PersonaID:           "data_analyst",
		Message:             "how do i start",
		ConversationHistory: history,
	}, info)

	assert.Equal(t, "hey trust me u will love it", resp.Response)
	assert.Equal(t, "Your Future Self - Data Analyst", resp.PersonaName)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, fixedNow, resp.Timestamp)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Len(t, req.History, 10)
	assert.Equal(t, llm.RoleModel, req.History[1].Role)
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, int32(300), req.MaxTokens)
	assert.Contains(t, req.System, "Excel, SQL")
	assert.Contains(t, req.System, "They still need to develop: Tableau.")
}

func TestReply_DefaultSkillsWithoutInfo(t *testing.T) {
	client := &MockLLMClient{ChatFunc: func(context.Context, llm.ChatRequest) (string, error) { return "ok", nil }}
	newTestChat(client).Reply(context.Background(), types.ChatRequest{PersonaID: "chef", Message: "hi"}, nil)

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].System, "some basic skills")
	assert.Contains(t, client.requests[0].System, "more advanced skills")
}

func TestReply_FailureYieldsApology(t *testing.T) {
	for name, client := range map[string]llm.Client{
		"no client": nil,
		"model error": &MockLLMClient{ChatFunc: func(context.Context, llm.ChatRequest) (string, error) {
			return "", errors.New("rate limited")
		}},
	} {
		t.Run(name, func(t *testing.T) {
			resp := newTestChat(client).Reply(context.Background(), types.ChatRequest{PersonaID: "x", Message: "hi"}, nil)
			assert.Equal(t, ApologyReply, resp.Response)
			assert.Equal(t, DefaultName, resp.PersonaName)
			assert.Equal(t, "x", resp.PersonaID)
		})
	}
}

func TestVoiceReply(t *testing.T) {
	client := &MockLLMClient{ChatFunc: func(context.Context, llm.ChatRequest) (string, error) {
		return "  Remember when we started? What are you working on now?  ", nil
	}}
	history := make([]types.ChatTurn, 8)
	for i := range history {
		history[i] = types.ChatTurn{Role: "user", Content: "hello"}
	}

	resp, err := newTestChat(client).VoiceReply(context.Background(), "nurse", types.VoiceChatRequest{
		Message:             "I'm nervous",
		ConversationHistory: history,
		UserBackground:      "retail manager",
		UserGoals:           "switch to healthcare",
	})
	require.NoError(t, err)
	assert.Equal(t, "Remember when we started? What are you working on now?", resp.Response)
	assert.Equal(t, "nurse", resp.PersonaID)

	req := client.requests[0]
	assert.Len(t, req.History, 5)
	assert.Contains(t, req.System, "successful Nurse")
	assert.Contains(t, req.System, "Your current background: retail manager")
	assert.Contains(t, req.System, "Your career goals: switch to healthcare")
}

func TestVoiceReply_Errors(t *testing.T) {
	_, err := newTestChat(nil).VoiceReply(context.Background(), "nurse", types.VoiceChatRequest{Message: "  "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = newTestChat(nil).VoiceReply(context.Background(), "nurse", types.VoiceChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	boom := errors.New("boom")
	client := &MockLLMClient{ChatFunc: func(context.Context, llm.ChatRequest) (string, error) { return "", boom }}
	_, err = newTestChat(client).VoiceReply(context.Background(), "nurse", types.VoiceChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, boom)
}

func TestHistory(t *testing.T) {
	got := history([]types.ChatTurn{
		{Role: "system", Content: "ignore"},
		{Role: "user", Content: "a"},
		{Role: "", Content: "b"},
		{Role: "model", Content: "c"},
		{Role: "assistant", Content: "  "},
	}, 10)
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Content: "a"},
		{Role: llm.RoleUser, Content: "b"},
		{Role: llm.RoleModel, Content: "c"},
	}, got)
}
