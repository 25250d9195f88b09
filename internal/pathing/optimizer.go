// Package pathing builds phased learning paths towards a target career.
package pathing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/llm"
	"github.com/jonathan/careerview/internal/logger"
	"github.com/jonathan/careerview/internal/prompts"
	"github.com/jonathan/careerview/internal/schemas"
	"github.com/jonathan/careerview/internal/types"
)

const (
	phaseSize        = 3
	maxPromptSkills  = 10
	costPerSkill     = 200
	freePerSkill     = 2
	jobReadyTimeline = "6-12 months to job-ready"
)

// Optimizer produces learning paths, asking the model first and falling back to
// a generic path built from the missing skills.
type Optimizer struct {
	client llm.Client
	logger *zap.Logger
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Optimizer) { o.logger = logger.OrNop(l) }
}

// New returns an Optimizer. A nil client always yields generic paths.
func New(client llm.Client, opts ...Option) *Optimizer {
	o := &Optimizer{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LearningPath returns a roadmap from userSkills to the career identified by careerID.
func (o *Optimizer) LearningPath(ctx context.Context, careerID string, userSkills, missingSkills []string, experienceLevel string) types.LearningPath {
	path, err := o.generate(ctx, careerID, userSkills, missingSkills, experienceLevel)
	if err != nil {
		o.logger.Warn("learning path generation failed, using generic path",
			zap.String("career_id", careerID), zap.Error(err))
		return GenericPath(careerID, missingSkills)
	}
	return *path
}

func (o *Optimizer) generate(ctx context.Context, careerID string, userSkills, missingSkills []string, experienceLevel string) (*types.LearningPath, error) {
	if o.client == nil {
		return nil, llm.ErrNotConfigured
	}

	title := types.CareerTitle(careerID)
	missing := "None identified"
	if len(missingSkills) > 0 {
		missing = strings.Join(missingSkills, ", ")
	}
	current := userSkills
	if len(current) > maxPromptSkills {
		current = current[:maxPromptSkills]
	}

	prompt, err := prompts.Render(prompts.PathsFile, "learning_path", map[string]string{
		"CareerTitle":     title,
		"CurrentSkills":   strings.Join(current, ", "),
		"MissingSkills":   missing,
		"ExperienceLevel": experienceLevel,
	})
	if err != nil {
		return nil, err
	}

	raw, err := o.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schemas.LearningPath, cleaned); err != nil {
		return nil, fmt.Errorf("learning path failed validation: %w", err)
	}

	var path types.LearningPath
	if err := json.Unmarshal([]byte(cleaned), &path); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if path.CareerTitle == "" {
		path.CareerTitle = title
	}
	return &path, nil
}

// GenericPath builds a path without the model: missing skills are split three
// per phase into immediate, short-term and long-term goals.
func GenericPath(careerID string, missingSkills []string) types.LearningPath {
	title := types.CareerTitle(careerID)

	immediate := phase(window(missingSkills, 0), "0-3 months", func(i int) string {
		if i == 0 {
			return "High"
		}
		return "Medium"
	}, "Build a project using %s", "Create a portfolio piece showcasing %s")
	shortTerm := phase(window(missingSkills, 1), "3-6 months", constant("Medium"),
		"Advanced project using %s", "Collaborative project with %s")
	longTerm := phase(window(missingSkills, 2), "6+ months", constant("Low"),
		"Expert-level project with %s", "Lead a project using %s")

	first := "foundation skills"
	if len(missingSkills) > 0 {
		first = missingSkills[0]
	}

	return types.LearningPath{
		CareerTitle: title,
		PersonalizedAssessment: types.PersonalizedAssessment{
			FoundationGaps:        window(missingSkills, 0),
			AdvancedOpportunities: advancedOpportunities(missingSkills, title),
			EstimatedTimeline:     jobReadyTimeline,
			EstimatedCost: fmt.Sprintf("$%d (plus %d free resources)",
				len(missingSkills)*costPerSkill, len(missingSkills)*freePerSkill),
		},
		MarketInsights: MarketInsightsFor(careerID),
		LearningRoadmap: types.LearningRoadmap{
			ImmediateSteps: immediate,
			ShortTermGoals: shortTerm,
			LongTermGoals:  longTerm,
		},
		TimelineOverview: map[string][]string{
			"0-3 months":  {"Foundation skills", "Basic projects", "Portfolio building"},
			"3-6 months":  {"Intermediate skills", "Advanced projects", "Networking"},
			"6-12 months": {"Expert skills", "Professional projects", "Job applications"},
		},
		SuccessMetrics: []string{
			"Complete 2-3 portfolio projects",
			"Earn 1-2 relevant certifications",
			"Build professional network in the field",
			"Apply to 5-10 relevant positions",
		},
		NextActions: []string{
			"Start with " + first,
			"Set up learning schedule (10-15 hours/week)",
			"Join relevant online communities",
			"Begin building portfolio projects",
		},
	}
}

// window returns the n-th group of three skills.
func window(skills []string, n int) []string {
	lo, hi := n*phaseSize, (n+1)*phaseSize
	if lo >= len(skills) {
		return []string{}
	}
	return append([]string(nil), skills[lo:min(hi, len(skills))]...)
}

// advancedOpportunities lists skills beyond the first phase; there is always at least one.
func advancedOpportunities(skills []string, title string) []string {
	if len(skills) > phaseSize {
		return append([]string(nil), skills[phaseSize:]...)
	}
	return []string{"Advanced " + title + " specialization"}
}

func constant(p string) func(int) string {
	return func(int) string { return p }
}

func phase(skills []string, timeline string, priority func(int) string, projects ...string) []types.LearningStep {
	steps := make([]types.LearningStep, 0, len(skills))
	for i, skill := range skills {
		ps := make([]string, 0, len(projects))
		for _, p := range projects {
			ps = append(ps, fmt.Sprintf(p, skill))
		}
		steps = append(steps, types.LearningStep{
			Skill:    skill,
			Priority: priority(i),
			Courses:  CoursesFor(skill),
			Projects: ps,
			Timeline: timeline,
		})
	}
	return steps
}
