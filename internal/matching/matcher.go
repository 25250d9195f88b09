// Package matching turns résumé facts into ranked career suggestions.
//
// The model is asked for suggestions through the careers prompt. Any failure
// along the way (no client, API error, malformed or invalid JSON) falls back to
// a fixed set of three suggestions, so Match always returns matches.
package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/llm"
	"github.com/jonathan/careerview/internal/logger"
	"github.com/jonathan/careerview/internal/prompts"
	"github.com/jonathan/careerview/internal/schemas"
	"github.com/jonathan/careerview/internal/types"
)

const (
	maxMatches         = 5
	maxMatchedSkills   = 5
	maxMissingSkills   = 3
	defaultMatchScore  = 75.0
	defaultTitle       = "Career Opportunity"
	defaultDescription = "Exciting career opportunity"
	defaultWhyGoodFit  = "Good match for your skills"
	defaultSalaryRange = "$50,000 - $80,000"
	defaultGrowth      = "Positive growth expected"
)

var defaultNextSteps = []string{"Continue learning", "Build portfolio"}

// ErrNoSuggestions is returned when the model answered with an empty list.
var ErrNoSuggestions = errors.New("model returned no career suggestions")

// suggestion mirrors one entry of the model's career_suggestions array.
type suggestion struct {
	Title           string          `json:"title"`
	CareerID        string          `json:"career_id"`
	MatchPercentage json.RawMessage `json:"match_percentage"`
	Description     string          `json:"description"`
	WhyGoodFit      string          `json:"why_good_fit"`
	MatchedSkills   []string        `json:"matched_skills"`
	MissingSkills   []string        `json:"missing_skills"`
	SalaryRange     string          `json:"salary_range"`
	GrowthOutlook   string          `json:"growth_outlook"`
	NextSteps       []string        `json:"next_steps"`
}

type suggestionsResponse struct {
	CareerSuggestions []suggestion `json:"career_suggestions"`
}

// Matcher asks the model for career suggestions.
type Matcher struct {
	client llm.Client
	logger *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) { m.logger = logger.OrNop(l) }
}

// New returns a Matcher. A nil client always yields the fallback suggestions.
func New(client llm.Client, opts ...Option) *Matcher {
	m := &Matcher{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns up to five suggestions for facts, or the fallback set.
func (m *Matcher) Match(ctx context.Context, facts *types.ResumeFacts) []types.CareerMatch {
	matches, err := m.suggest(ctx, facts)
	if err != nil {
		m.logger.Warn("career matching failed, using fallback suggestions", zap.Error(err))
		return Fallback(facts)
	}
	m.logger.Info("career matches generated", zap.Int("count", len(matches)))
	return matches
}

func (m *Matcher) suggest(ctx context.Context, facts *types.ResumeFacts) ([]types.CareerMatch, error) {
	if m.client == nil {
		return nil, llm.ErrNotConfigured
	}

	prompt, err := buildPrompt(facts)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("resume summary for matching", zap.String("summary", Summary(facts)))

	raw, err := m.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schemas.CareerSuggestions, cleaned); err != nil {
		return nil, fmt.Errorf("career suggestions failed validation: %w", err)
	}

	var resp suggestionsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(resp.CareerSuggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	return format(resp.CareerSuggestions, ExperienceYears(facts.ExperienceYears)), nil
}

func buildPrompt(facts *types.ResumeFacts) (string, error) {
	system, err := prompts.Get(prompts.CareersFile, "system")
	if err != nil {
		return "", err
	}
	analysis, err := prompts.Render(prompts.CareersFile, "analysis", map[string]string{
		"Summary": Summary(facts),
	})
	if err != nil {
		return "", err
	}
	return system + "\n\n" + analysis, nil
}

// format applies defaults and limits to the model's suggestions.
func format(suggestions []suggestion, years int) []types.CareerMatch {
	alignment := experienceAlignment(years)
	matches := make([]types.CareerMatch, 0, maxMatches)

	for i, s := range suggestions {
		if i == maxMatches {
			break
		}
		pct := parsePercentage(s.MatchPercentage)
		matches = append(matches, types.CareerMatch{
			CareerID:            careerID(s.CareerID, i),
			Title:               orDefault(s.Title, defaultTitle),
			MatchPercentage:     pct,
			Description:         orDefault(s.Description, defaultDescription),
			WhyGoodFit:          orDefault(s.WhyGoodFit, defaultWhyGoodFit),
			MatchedSkills:       limit(s.MatchedSkills, maxMatchedSkills),
			MissingSkills:       limit(s.MissingSkills, maxMissingSkills),
			SalaryRange:         orDefault(s.SalaryRange, defaultSalaryRange),
			GrowthOutlook:       orDefault(s.GrowthOutlook, defaultGrowth),
			NextSteps:           nextSteps(s.NextSteps),
			VectorSimilarity:    pct / 100,
			SkillOverlap:        len(s.MatchedSkills),
			ExperienceAlignment: alignment,
		})
	}
	return matches
}

// parsePercentage accepts numbers and numeric strings such as "85" or "85%".
// Anything else, or a value outside 0-100, yields the default score.
func parsePercentage(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return defaultMatchScore
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return defaultMatchScore
		}
		n, err = strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
		if err != nil {
			return defaultMatchScore
		}
	}
	if n < 0 || n > 100 {
		return defaultMatchScore
	}
	return n
}

var nonIDChars = regexp.MustCompile(`[^a-z0-9]+`)

// careerID normalizes a model-supplied id to snake_case. Empty or numeric ids
// are replaced by career_<n>.
func careerID(raw string, i int) string {
	id := strings.Trim(nonIDChars.ReplaceAllString(strings.ToLower(raw), "_"), "_")
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		return fmt.Sprintf("career_%d", i+1)
	}
	return id
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func limit(s []string, n int) []string {
	if s == nil {
		return []string{}
	}
	if len(s) > n {
		return append([]string(nil), s[:n]...)
	}
	return s
}

func nextSteps(steps []string) []string {
	if len(steps) == 0 {
		return append([]string(nil), defaultNextSteps...)
	}
	return steps
}
