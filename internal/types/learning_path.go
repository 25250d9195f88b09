package types

import "time"

// LearningPath is a phased roadmap towards a target career
type LearningPath struct {
	CareerTitle            string                 `json:"career_title"`
	PersonalizedAssessment PersonalizedAssessment `json:"personalized_assessment"`
	MarketInsights         MarketInsights         `json:"market_insights"`
	LearningRoadmap        LearningRoadmap        `json:"learning_roadmap"`
	TimelineOverview       map[string][]string    `json:"timeline_overview"`
	SuccessMetrics         []string               `json:"success_metrics"`
	NextActions            []string               `json:"next_actions"`
}

// PersonalizedAssessment summarises the gap between current and target skills
type PersonalizedAssessment struct {
	FoundationGaps        []string `json:"foundation_gaps"`
	AdvancedOpportunities []string `json:"advanced_opportunities"`
	EstimatedTimeline     string   `json:"estimated_timeline"`
	EstimatedCost         string   `json:"estimated_cost"`
}

// MarketInsights describes the job market for a career
type MarketInsights struct {
	GrowthRate   string   `json:"growth_rate"`
	AvgSalary    string   `json:"avg_salary"`
	TopCompanies []string `json:"top_companies"`
	KeySkills    []string `json:"key_skills"`
}

// LearningRoadmap holds the three roadmap phases
type LearningRoadmap struct {
	ImmediateSteps []LearningStep `json:"immediate_steps"`
	ShortTermGoals []LearningStep `json:"short_term_goals"`
	LongTermGoals  []LearningStep `json:"long_term_goals"`
}

// LearningStep is one skill to acquire within a phase
type LearningStep struct {
	Skill    string   `json:"skill"`
	Priority string   `json:"priority"`
	Courses  []Course `json:"courses"`
	Projects []string `json:"projects"`
	Timeline string   `json:"timeline"`
}

// Course is a learning resource recommendation
type Course struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Duration string `json:"duration"`
	Cost     string `json:"cost"`
	URL      string `json:"url,omitempty"`
}

// PathProfile is the résumé summary attached to a career path record
type PathProfile struct {
	Name            string   `json:"name"`
	CurrentSkills   []string `json:"current_skills"`
	ExperienceLevel string   `json:"experience_level"`
}

// CareerPathRecord is what the career-path endpoint returns and persists per career
type CareerPathRecord struct {
	CareerID     string       `json:"career_id"`
	CurrentMatch CareerMatch  `json:"current_match"`
	LearningPath LearningPath `json:"learning_path"`
	UserProfile  PathProfile  `json:"user_profile"`
	Timestamp    time.Time    `json:"timestamp"`
}

// CareerPathSummary is a list entry for stored career paths
type CareerPathSummary struct {
	CareerID     string       `json:"career_id"`
	Title        string       `json:"title"`
	CreatedAt    time.Time    `json:"created_at"`
	UserProfile  PathProfile  `json:"user_profile"`
	LearningPath LearningPath `json:"learning_path"`
}
