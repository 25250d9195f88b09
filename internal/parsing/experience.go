package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/careerview/internal/types"
)

// Experience labels. Every ResumeFacts.ExperienceYears value is one of these.
const (
	LabelInternship  = "0-1 years (Internship/Entry Level)"
	LabelStudent     = "0-1 years (Student/Internship)"
	LabelUnderOne    = "0-1 years"
	LabelOneToTwo    = "1-2 years"
	LabelTwoToThree  = "2-3 years"
	LabelThreeToFive = "3-5 years"
	LabelFiveToTen   = "5-10 years"
	LabelTenPlus     = "10+ years"
)

// ExperienceLabels is the closed set of experience labels
var ExperienceLabels = []string{
	types.ExperienceNotSpecified,
	LabelInternship,
	LabelStudent,
	LabelUnderOne,
	LabelOneToTwo,
	LabelTwoToThree,
	LabelThreeToFive,
	LabelFiveToTen,
	LabelTenPlus,
}

// earliestWorkYear bounds the years treated as work-relevant
const earliestWorkYear = 2015

var (
	yearPattern       = regexp.MustCompile(`\b(20\d{2})\b`)
	internshipPattern = regexp.MustCompile(`\bintern\b|\binternship\b|\bco-op\b|\btrainee\b`)
	studentPattern    = regexp.MustCompile(`\bintern\b|\binternship\b|\bco-op\b|\btrainee\b|\bcandidate\b`)
)

// experienceBuckets maps an upper bound in years to its label, checked in order
var experienceBuckets = []struct {
	maxYears int
	label    string
}{
	{1, LabelUnderOne},
	{2, LabelOneToTwo},
	{3, LabelTwoToThree},
	{5, LabelThreeToFive},
	{10, LabelFiveToTen},
}

// inferExperience derives an experience label from the earliest plausible year in text.
// The earliest year may be an education start date; that conflation is accepted.
func inferExperience(text string, currentYear int) string {
	lower := strings.ToLower(text)

	tokens := yearPattern.FindAllString(text, -1)
	if len(tokens) == 0 {
		if internshipPattern.MatchString(lower) {
			return LabelInternship
		}
		return types.ExperienceNotSpecified
	}

	oldest := 0
	for _, tok := range tokens {
		year, err := strconv.Atoi(tok)
		if err != nil || year < earliestWorkYear || year > currentYear {
			continue
		}
		if oldest == 0 || year < oldest {
			oldest = year
		}
	}

	if oldest == 0 {
		if studentPattern.MatchString(lower) {
			return LabelStudent
		}
		return LabelUnderOne
	}

	years := max(currentYear-oldest, 0)
	if years <= 1 && internshipPattern.MatchString(lower) {
		return LabelInternship
	}
	for _, b := range experienceBuckets {
		if years <= b.maxYears {
			return b.label
		}
	}
	return LabelTenPlus
}
