package matching

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/careerview/internal/types"
)

const (
	maxSummarySkills    = 15
	maxSummaryTitles    = 5
	maxSummaryEducation = 3
)

var nonTechTitleWords = []string{
	"architect", "designer", "manager", "analyst", "consultant", "coordinator",
	"specialist", "director", "supervisor", "teacher", "professor", "researcher",
	"scientist", "doctor", "nurse", "lawyer", "accountant", "marketing", "sales",
	"hr", "operations",
}

var nonTechDegreeWords = []string{
	"architecture", "design", "business", "marketing", "education", "psychology",
	"sociology", "political", "history", "english", "art", "music", "theater",
	"medicine", "nursing", "law", "accounting", "finance", "economics",
}

var programmingLanguages = map[string]bool{
	"C": true, "C++": true, "Java": true, "Python": true, "JavaScript": true, "Go": true,
	"R": true, "Lua": true, "Ruby": true, "PHP": true, "Swift": true, "Kotlin": true,
	"Rust": true, "TypeScript": true, "C#": true, "Scala": true, "Haskell": true,
	"Clojure": true, "Erlang": true, "F#": true, "OCaml": true, "Prolog": true,
	"Lisp": true, "Assembly": true, "MATLAB": true, "SAS": true, "Stata": true,
	"SPSS": true, "Rspec": true,
}

var leadingNumber = regexp.MustCompile(`\d+`)

// ExperienceYears returns the first number in an experience label, or 0.
func ExperienceYears(label string) int {
	m := leadingNumber.FindString(label)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// IsNonTechField reports whether titles or education point to a field outside software.
func IsNonTechField(titles, education []string) bool {
	for _, title := range titles {
		lower := strings.ToLower(title)
		for _, w := range nonTechTitleWords {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}

	edu := strings.ToLower(strings.Join(education, " "))
	for _, w := range nonTechDegreeWords {
		if strings.Contains(edu, w) {
			return true
		}
	}
	return false
}

// fieldSkills drops programming languages when the résumé is from a non-tech field.
func fieldSkills(facts *types.ResumeFacts) []string {
	if !IsNonTechField(facts.JobTitles, facts.Education) {
		return facts.Skills.AllSkills
	}
	out := make([]string, 0, len(facts.Skills.AllSkills))
	for _, s := range facts.Skills.AllSkills {
		if !programmingLanguages[s] {
			out = append(out, s)
		}
	}
	return out
}

// Summary renders the facts the model sees.
func Summary(facts *types.ResumeFacts) string {
	var parts []string

	if facts.Name != "" && facts.Name != types.NameNotFound {
		parts = append(parts, "Candidate: "+facts.Name)
	}
	if years := ExperienceYears(facts.ExperienceYears); years > 0 {
		parts = append(parts, fmt.Sprintf("Experience: %d years", years))
	}
	if skills := fieldSkills(facts); len(skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(head(skills, maxSummarySkills), ", "))
	}
	if len(facts.JobTitles) > 0 {
		parts = append(parts, "Previous roles: "+strings.Join(head(facts.JobTitles, maxSummaryTitles), ", "))
	}
	if len(facts.Education) > 0 {
		parts = append(parts, "Education: "+strings.Join(head(facts.Education, maxSummaryEducation), ", "))
	}
	return strings.Join(parts, "\n")
}

func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
