package parsing

import (
	"regexp"
	"strings"
)

var (
	datePattern = regexp.MustCompile(`\d{4}|\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)

	// titlePatterns capture a title and the rest of its sentence on the line
	titlePatterns = compileTitlePatterns(jobTitles)
)

func compileTitlePatterns(titles []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(titles))
	for _, t := range titles {
		patterns[t] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b[^.]*`)
	}
	return patterns
}

// extractJobTitles unions a contextual line scan with a loose whole-text scan
func extractJobTitles(text string) []string {
	found := newStringSet()
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		lineLower := strings.ToLower(clean)
		if titleSectionHeaders[lineLower] {
			continue
		}

		for _, title := range jobTitles {
			if !strings.Contains(lineLower, title) {
				continue
			}
			if !hasDateContext(lines, i, clean) && !hasRoleIndicator(lineLower) {
				continue
			}
			if m := strings.TrimSpace(titlePatterns[title].FindString(clean)); m != "" {
				found.add(m)
			} else {
				found.add(titleCase(title))
			}
		}
	}

	lower := strings.ToLower(text)
	for _, title := range jobTitles {
		if strings.Contains(lower, title) {
			found.add(titleCase(title))
		}
	}

	return found.sorted()
}

// hasDateContext looks for a year or month abbreviation in the line and its neighbours
func hasDateContext(lines []string, i int, clean string) bool {
	window := make([]string, 0, 3)
	if i > 0 {
		window = append(window, lines[i-1])
	}
	window = append(window, clean)
	if i < len(lines)-1 {
		window = append(window, lines[i+1])
	}
	return datePattern.MatchString(strings.ToLower(strings.Join(window, " ")))
}

func hasRoleIndicator(lineLower string) bool {
	for _, ind := range roleIndicators {
		if strings.Contains(lineLower, ind) {
			return true
		}
	}
	return false
}
