package types

import (
	"strings"
	"time"
)

// CareerMatch is a single ranked career suggestion
type CareerMatch struct {
	CareerID            string   `json:"career_id"`
	Title               string   `json:"title"`
	MatchPercentage     float64  `json:"match_percentage"`
	Description         string   `json:"description"`
	WhyGoodFit          string   `json:"why_good_fit"`
	MatchedSkills       []string `json:"matched_skills"`
	MissingSkills       []string `json:"missing_skills"`
	SalaryRange         string   `json:"salary_range"`
	GrowthOutlook       string   `json:"growth_outlook"`
	NextSteps           []string `json:"next_steps"`
	VectorSimilarity    float64  `json:"vector_similarity"`
	SkillOverlap        int      `json:"skill_overlap"`
	ExperienceAlignment float64  `json:"experience_alignment"`
	ExperienceLevel     string   `json:"experience_level,omitempty"`
}

// UserProfile is the résumé summary attached to a matches record
type UserProfile struct {
	Name            string   `json:"name"`
	ExperienceYears string   `json:"experience_years"`
	TotalSkills     int      `json:"total_skills"`
	TopSkills       []string `json:"top_skills"`
}

// CareerMatchesRecord is what the matches endpoint returns and persists per user
type CareerMatchesRecord struct {
	UserID        string        `json:"user_id"`
	Matches       []CareerMatch `json:"matches"`
	Timestamp     time.Time     `json:"timestamp"`
	TotalMatches  int           `json:"total_matches"`
	BasedOnResume string        `json:"based_on_resume"`
	UserProfile   UserProfile   `json:"user_profile"`
}

// Find returns the match with the given career id
func (r *CareerMatchesRecord) Find(careerID string) (CareerMatch, bool) {
	for _, m := range r.Matches {
		if m.CareerID == careerID {
			return m, true
		}
	}
	return CareerMatch{}, false
}

// CareerTitle turns a career id such as "data_scientist" into "Data Scientist"
func CareerTitle(careerID string) string {
	words := strings.Fields(strings.ReplaceAll(careerID, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// GenericCareerMatch is used when a career id is not among the computed matches
func GenericCareerMatch(careerID string) CareerMatch {
	return CareerMatch{
		CareerID:        careerID,
		Title:           CareerTitle(careerID),
		MatchPercentage: 75,
		Description:     "Professional in " + strings.ReplaceAll(careerID, "_", " "),
		MatchedSkills:   []string{"Relevant Skills"},
		MissingSkills:   []string{"Industry Knowledge", "Technical Skills", "Professional Development"},
		ExperienceLevel: "Entry",
	}
}
