package parsing

import (
	"regexp"
	"strings"
)

var (
	degreePatterns = []*regexp.Regexp{
		regexp.MustCompile(`bachelor\s+of\s+[\w\s]+`),
		regexp.MustCompile(`master\s+of\s+[\w\s]+`),
		regexp.MustCompile(`b\.?s\.?\s+in\s+[\w\s]+`),
		regexp.MustCompile(`m\.?s\.?\s+in\s+[\w\s]+`),
		regexp.MustCompile(`phd\s+in\s+[\w\s]+`),
		regexp.MustCompile(`doctorate\s+in\s+[\w\s]+`),
		regexp.MustCompile(`candidate\s+for\s+[\w\s]+`),
	}

	institutionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`university\s+of\s+[\w\s]+`),
		regexp.MustCompile(`[\w\s]+\s+university`),
		regexp.MustCompile(`[\w\s]+\s+college`),
		regexp.MustCompile(`[\w\s]+\s+institute`),
	}

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// extractEducation collects degree, institution and field-of-study phrases
// from lines inside an education section. Headers are matched exactly.
func extractEducation(text string) []string {
	found := newStringSet()
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)

		if educationStartHeaders[lower] {
			inSection = true
			continue
		}
		if educationEndHeaders[lower] {
			inSection = false
			continue
		}
		if !inSection {
			continue
		}

		for _, re := range degreePatterns {
			for _, m := range re.FindAllString(lower, -1) {
				found.add(titleCase(m))
			}
		}
		for _, re := range institutionPatterns {
			for _, m := range re.FindAllString(lower, -1) {
				m = strings.TrimSpace(whitespaceRun.ReplaceAllString(m, " "))
				if len(m) > 3 {
					found.add(titleCase(m))
				}
			}
		}
		for _, kw := range educationKeywords {
			if strings.Contains(lower, kw) {
				found.add(titleCase(kw))
			}
		}
	}

	return found.sorted()
}
