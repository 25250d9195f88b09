package persona

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/llm"
	"github.com/jonathan/careerview/internal/logger"
	"github.com/jonathan/careerview/internal/prompts"
	"github.com/jonathan/careerview/internal/types"
)

const (
	chatHistoryTurns  = 10
	voiceHistoryTurns = 5
	promptSkillCount  = 5
	chatTemperature   = 0.7
	chatMaxTokens     = 300
)

// ApologyReply is sent when the model could not answer.
const ApologyReply = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// Chat talks to the model on behalf of a persona.
type Chat struct {
	client llm.Client
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Chat.
type Option func(*Chat)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chat) { c.logger = logger.OrNop(l) }
}

// WithClock sets the clock used for reply timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Chat) { c.now = now }
}

// WithIDGenerator sets the conversation id generator.
func WithIDGenerator(f func() string) Option {
	return func(c *Chat) { c.newID = f }
}

// NewChat returns a Chat. A nil client makes every reply the apology.
func NewChat(client llm.Client, opts ...Option) *Chat {
	c := &Chat{
		client: client,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reply answers req as the future-self persona for req.PersonaID. Model
// failures yield the apology reply rather than an error.
func (c *Chat) Reply(ctx context.Context, req types.ChatRequest, info *types.CareerMatch) types.ChatResponse {
	p := NewFutureSelf(req.PersonaID, info)
	resp := types.ChatResponse{
		PersonaID:      req.PersonaID,
		PersonaName:    p.Name,
		Timestamp:      c.now().UTC(),
		ConversationID: c.newID(),
	}

	text, err := c.reply(ctx, p, req, info)
	if err != nil {
		c.logger.Error("persona chat failed",
			zap.String("persona_id", req.PersonaID), zap.Error(err))
		resp.PersonaName = DefaultName
		resp.Response = ApologyReply
		return resp
	}
	resp.Response = TextingStyle(text)
	return resp
}

func (c *Chat) reply(ctx context.Context, p *types.Persona, req types.ChatRequest, info *types.CareerMatch) (string, error) {
	if c.client == nil {
		return "", llm.ErrNotConfigured
	}

	matched, missing := "some basic skills", "more advanced skills"
	if info != nil && len(info.MatchedSkills) > 0 {
		matched = strings.Join(first(info.MatchedSkills, promptSkillCount), ", ")
	}
	if info != nil && len(info.MissingSkills) > 0 {
		missing = strings.Join(first(info.MissingSkills, promptSkillCount), ", ")
	}

	system, err := prompts.Render(prompts.PersonaFile, "future_self", map[string]string{
		"PersonaName":   p.Name,
		"CareerTitle":   p.Role,
		"Personality":   p.Personality,
		"VoiceStyle":    p.VoiceStyle,
		"MatchedSkills": matched,
		"MissingSkills": missing,
	})
	if err != nil {
		return "", err
	}

	return c.client.Chat(ctx, llm.ChatRequest{
		System:      system,
		History:     history(req.ConversationHistory, chatHistoryTurns),
		Message:     req.Message,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		Tier:        llm.TierStandard,
	})
}

// VoiceReply answers a voice message. Unlike Reply the text is returned as
// spoken prose and failures are returned to the caller.
func (c *Chat) VoiceReply(ctx context.Context, personaID string, req types.VoiceChatRequest) (types.VoiceChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return types.VoiceChatResponse{}, ErrEmptyMessage
	}
	if c.client == nil {
		return types.VoiceChatResponse{}, llm.ErrNotConfigured
	}

	p := NewFutureSelf(personaID, nil)
	var userContext strings.Builder
	if req.UserBackground != "" {
		userContext.WriteString("\n\nYour current background: " + req.UserBackground)
	}
	if req.UserGoals != "" {
		userContext.WriteString("\n\nYour career goals: " + req.UserGoals)
	}

	system, err := prompts.Render(prompts.PersonaFile, "voice", map[string]string{
		"CareerTitle": p.Role,
		"Personality": p.Personality,
		"UserContext": userContext.String(),
	})
	if err != nil {
		return types.VoiceChatResponse{}, err
	}

	text, err := c.client.Chat(ctx, llm.ChatRequest{
		System:      system,
		History:     history(req.ConversationHistory, voiceHistoryTurns),
		Message:     req.Message,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		Tier:        llm.TierStandard,
	})
	if err != nil {
		return types.VoiceChatResponse{}, fmt.Errorf("voice chat failed: %w", err)
	}

	return types.VoiceChatResponse{
		PersonaID: personaID,
		Response:  strings.TrimSpace(text),
		Timestamp: c.now().UTC(),
	}, nil
}

// history keeps the last n turns, mapping roles onto the model's user/model pair.
// System turns and empty messages are dropped.
func history(turns []types.ChatTurn, n int) []llm.Message {
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		switch t.Role {
		case "assistant", "model":
			out = append(out, llm.Message{Role: llm.RoleModel, Content: t.Content})
		case "system":
		default:
			out = append(out, llm.Message{Role: llm.RoleUser, Content: t.Content})
		}
	}
	return out
}

func first(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
