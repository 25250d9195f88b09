package pathing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerview/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	lastPrompt       string
	lastTier         llm.ModelTier
}

func (m *MockLLMClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.lastPrompt, m.lastTier = prompt, tier
	return m.GenerateJSONFunc(ctx, prompt, tier)
}

func (m *MockLLMClient) Chat(context.Context, llm.ChatRequest) (string, error) { return "", nil }
func (m *MockLLMClient) GetModel(llm.ModelTier) string                         { return "mock-model" }
func (m *MockLLMClient) Close() error                                          { return nil }

func TestLearningPath_FromModel(t *testing.T) {
	client := &MockLLMClient{GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
		return "```json\n" + `{
			"learning_roadmap": {
				"immediate_steps": [{"skill": "Statistics", "priority": "High", "courses": [{"name": "Stats 101", "provider": "Khan Academy"}]}]
			},
			"career_title": "",
			"market_insights": {"growth_rate": "+30%"}
		}` + "\n```", nil
	}}

	path := New(client).LearningPath(context.Background(), "data_scientist",
		[]string{"Python", "Excel"}, []string{"Statistics"}, "Entry")

	assert.Equal(t, "Data Scientist", path.CareerTitle)
	require.Len(t, path.LearningRoadmap.ImmediateSteps, 1)
	assert.Equal(t, "Stats 101", path.LearningRoadmap.ImmediateSteps[0].Courses[0].Name)
	assert.Equal(t, "+30%", path.MarketInsights.GrowthRate)

	assert.Equal(t, llm.TierAdvanced, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Current Skills: Python, Excel")
	assert.Contains(t, client.lastPrompt, "Missing Skills: Statistics")
	assert.Contains(t, client.lastPrompt, "Experience Level: Entry")
}

func TestLearningPath_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{"no client", nil},
		{"api error", &MockLLMClient{GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", errors.New("timeout")
		}}},
		{"invalid shape", &MockLLMClient{GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return `{"career_title": "X"}`, nil
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := New(tt.client).LearningPath(context.Background(), "ux_designer", nil, []string{"Figma"}, "Entry")
			assert.Equal(t, "Ux Designer", path.CareerTitle)
			assert.Equal(t, "$200 (plus 2 free resources)", path.PersonalizedAssessment.EstimatedCost)
		})
	}
}

func TestGenericPath_Phases(t *testing.T) {
	missing := []string{"Python", "SQL", "Statistics", "Tableau", "Spark", "Airflow", "Kafka", "dbt", "Looker", "Excel"}
	path := GenericPath("data_analyst", missing)

	rm := path.LearningRoadmap
	require.Len(t, rm.ImmediateSteps, 3)
	require.Len(t, rm.ShortTermGoals, 3)
	require.Len(t, rm.LongTermGoals, 3)

	assert.Equal(t, "High", rm.ImmediateSteps[0].Priority)
	assert.Equal(t, "Medium", rm.ImmediateSteps[1].Priority)
	assert.Equal(t, "Medium", rm.ShortTermGoals[0].Priority)
	assert.Equal(t, "Low", rm.LongTermGoals[2].Priority)
	assert.Equal(t, "dbt", rm.LongTermGoals[1].Skill)
	assert.Equal(t, "6+ months", rm.LongTermGoals[0].Timeline)
	assert.Equal(t, []string{"Build a project using Python", "Create a portfolio piece showcasing Python"},
		rm.ImmediateSteps[0].Projects)

	pa := path.PersonalizedAssessment
	assert.Equal(t, []string{"Python", "SQL", "Statistics"}, pa.FoundationGaps)
	assert.Len(t, pa.AdvancedOpportunities, 7)
	assert.Equal(t, "$2000 (plus 20 free resources)", pa.EstimatedCost)
	assert.Equal(t, "6-12 months to job-ready", pa.EstimatedTimeline)
	assert.Equal(t, "Start with Python", path.NextActions[0])
	assert.Len(t, path.TimelineOverview, 3)
}

func TestGenericPath_NoMissingSkills(t *testing.T) {
	path := GenericPath("architect", nil)
	assert.Empty(t, path.LearningRoadmap.ImmediateSteps)
	assert.NotNil(t, path.LearningRoadmap.ImmediateSteps)
	assert.Equal(t, "Start with foundation skills", path.NextActions[0])
	assert.Equal(t, []string{"Advanced Architect specialization"}, path.PersonalizedAssessment.AdvancedOpportunities)
	assert.Equal(t, "$0 (plus 0 free resources)", path.PersonalizedAssessment.EstimatedCost)
}

func TestCoursesFor(t *testing.T) {
	tests := []struct {
		skill    string
		firstHas string
	}{
		{"Python", "CS50"},
		{"Data visualization", "Machine Learning"},
		{"UX Research", "Google UX Design Certificate"},
		{"Project planning", "Business Foundations"},
		{"Revit", "Architecture and Design"},
		{"Public Speaking", "Communication Skills"},
		{"Welding", "Introduction to Welding"},
	}
	for _, tt := range tests {
		courses := CoursesFor(tt.skill)
		require.Len(t, courses, 3, tt.skill)
		assert.Contains(t, courses[0].Name, tt.firstHas, tt.skill)
	}
}

func TestMarketInsightsFor(t *testing.T) {
	devops := MarketInsightsFor("devops_engineer")
	assert.Equal(t, "+25%", devops.GrowthRate)
	assert.Len(t, devops.TopCompanies, 8)

	other := MarketInsightsFor("florist")
	assert.Equal(t, "$85K", other.AvgSalary)
	assert.Equal(t, []string{"Google", "Microsoft", "Amazon", "Meta", "Apple"}, other.TopCompanies)

	devops.TopCompanies[0] = "changed"
	assert.Equal(t, "Google", MarketInsightsFor("devops_engineer").TopCompanies[0])
}
