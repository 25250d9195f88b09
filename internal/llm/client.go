package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/jonathan/careerview/internal/logger"
)

// ErrNotConfigured is returned when no API key was supplied.
var ErrNotConfigured = errors.New("llm client is not configured")

// Role values for chat history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of chat history.
type Message struct {
	Role    string
	Content string
}

// ChatRequest is a multi-turn exchange with a system instruction.
type ChatRequest struct {
	System      string
	History     []Message
	Message     string
	Temperature float32
	MaxTokens   int32
	Tier        ModelTier
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Chat continues a conversation under a system instruction
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// GetModel returns the model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client       *genai.Client
	config       *Config
	logger       *zap.Logger
	maxLogLength int
}

// Option configures a GeminiClient
type Option func(*GeminiClient)

// WithLogger sets the logger used for debug prompt and response traces
func WithLogger(l *zap.Logger) Option {
	return func(c *GeminiClient) { c.logger = logger.OrNop(l) }
}

// WithMaxLogLength caps how much of each prompt and response is logged
func WithMaxLogLength(n int) Option {
	return func(c *GeminiClient) { c.maxLogLength = n }
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, opts ...Option) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &GeminiClient{
		client:       client,
		config:       config,
		logger:       zap.NewNop(),
		maxLogLength: 500,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// model returns the generative model for tier and its resolved name
func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, "", fmt.Errorf("no model configured for tier %s", tier)
	}
	return c.client.GenerativeModel(modelName), modelName, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, modelName, err := c.model(tier)
	if err != nil {
		return "", err
	}
	model.SetTemperature(0.3)

	return c.generate(ctx, model, modelName, prompt)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, modelName, err := c.model(tier)
	if err != nil {
		return "", err
	}
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	text, err := c.generate(ctx, model, modelName, prompt)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, modelName, prompt string) (string, error) {
	c.logger.Debug("llm request",
		zap.String("model", modelName),
		zap.String("prompt", logger.TruncateForLog(prompt, c.maxLogLength)))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	c.logger.Debug("llm response", zap.String("response", logger.TruncateForLog(text, c.maxLogLength)))
	return text, nil
}

// Chat sends req.Message after replaying req.History under req.System.
func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	tier := req.Tier
	if tier == "" {
		tier = TierStandard
	}
	model, modelName, err := c.model(tier)
	if err != nil {
		return "", err
	}
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	session := model.StartChat()
	for _, m := range req.History {
		role := RoleUser
		if m.Role != RoleUser {
			role = RoleModel
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	c.logger.Debug("llm chat",
		zap.String("model", modelName),
		zap.Int("history", len(session.History)),
		zap.String("message", logger.TruncateForLog(req.Message, c.maxLogLength)))

	resp, err := session.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
