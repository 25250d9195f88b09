package matching

import (
	"strings"

	"github.com/jonathan/careerview/internal/types"
)

const maxFallbackSkills = 5

type fallbackCareer struct {
	match    types.CareerMatch
	keywords []string
}

var fallbackCareers = []fallbackCareer{
	{
		match: types.CareerMatch{
			CareerID:         "software_developer",
			Title:            "Software Developer",
			MatchPercentage:  70,
			Description:      "Develop software applications and systems",
			WhyGoodFit:       "Based on your technical skills and experience",
			MissingSkills:    []string{"Advanced algorithms", "System design"},
			SalaryRange:      "$60,000 - $100,000",
			GrowthOutlook:    "Strong growth in tech sector",
			NextSteps:        []string{"Build coding portfolio", "Practice algorithms"},
			VectorSimilarity: 0.7,
			SkillOverlap:     3,
		},
		keywords: []string{"python", "java", "javascript", "programming", "software", "code"},
	},
	{
		match: types.CareerMatch{
			CareerID:         "data_analyst",
			Title:            "Data Analyst",
			MatchPercentage:  65,
			Description:      "Analyze data to help businesses make decisions",
			WhyGoodFit:       "Your analytical skills would be valuable",
			MissingSkills:    []string{"SQL", "Data visualization"},
			SalaryRange:      "$50,000 - $80,000",
			GrowthOutlook:    "High demand for data skills",
			NextSteps:        []string{"Learn SQL", "Practice with datasets"},
			VectorSimilarity: 0.65,
			SkillOverlap:     2,
		},
		keywords: []string{"excel", "sql", "data", "analysis", "statistics"},
	},
	{
		match: types.CareerMatch{
			CareerID:         "project_manager",
			Title:            "Project Manager",
			MatchPercentage:  60,
			Description:      "Lead and coordinate projects from start to finish",
			WhyGoodFit:       "Your experience shows leadership potential",
			MissingSkills:    []string{"PMP certification", "Agile methodology"},
			SalaryRange:      "$55,000 - $90,000",
			GrowthOutlook:    "Consistent demand across industries",
			NextSteps:        []string{"Get PMP certification", "Learn Agile/Scrum"},
			VectorSimilarity: 0.6,
			SkillOverlap:     2,
		},
		keywords: []string{"management", "leadership", "project", "coordination"},
	},
}

// Fallback returns the built-in suggestions used when the model is unavailable.
// Matched skills are the résumé skills containing one of each career's keywords.
func Fallback(facts *types.ResumeFacts) []types.CareerMatch {
	alignment := experienceAlignment(ExperienceYears(facts.ExperienceYears))

	out := make([]types.CareerMatch, 0, len(fallbackCareers))
	for _, fc := range fallbackCareers {
		m := fc.match
		m.MatchedSkills = skillsContaining(facts.Skills.AllSkills, fc.keywords, maxFallbackSkills)
		m.MissingSkills = append([]string(nil), fc.match.MissingSkills...)
		m.NextSteps = append([]string(nil), fc.match.NextSteps...)
		m.ExperienceAlignment = alignment
		out = append(out, m)
	}
	return out
}

func skillsContaining(skills, keywords []string, limit int) []string {
	out := []string{}
	for _, s := range skills {
		lower := strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				out = append(out, s)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func experienceAlignment(years int) float64 {
	if years <= 0 {
		return 0
	}
	return min(float64(years)/5.0, 1.0)
}
