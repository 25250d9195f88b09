// Package llm provides the model configuration and client abstraction used for
// career suggestions, learning paths and persona chat.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierStandard is for structured output: career suggestions, persona replies
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long structured plans: learning paths
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model per tier
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini models
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.0-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// NewConfig builds a Config from configured model names. Empty names keep the defaults.
func NewConfig(standard, advanced string) *Config {
	c := DefaultConfig()
	if standard != "" {
		c = c.WithModel(TierStandard, standard)
	}
	if advanced != "" {
		c = c.WithModel(TierAdvanced, advanced)
	}
	return c
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback: an unknown tier uses the standard model
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Models: make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
