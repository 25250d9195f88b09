package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/careerview/internal/types"
)

// EntityRecognizer finds person names in free text
type EntityRecognizer interface {
	PersonNames(text string) []string
}

var nameSkipRegexps = compileAll(nameSkipPatterns)

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// headerLineCount is how many non-empty leading lines are scanned for a name
const headerLineCount = 5

// nameRule is one row of the selection table. Rules run in order; the first
// rule that picks a candidate wins.
type nameRule struct {
	name string
	pick func(candidates []string, firstLine string) (string, bool)
}

var nameRules = []nameRule{
	{"longest-on-first-line", pickLongestOnFirstLine},
	{"plausible-shape", pickPlausibleShape},
	{"first-found", pickFirstFound},
}

// extractName is a priority heuristic over three candidate sources.
// It is brittle by nature: a name on a line with a phone number or an
// unusual capitalisation will be missed.
func extractName(text string, recognizer EntityRecognizer) (string, string) {
	var candidates []string
	candidates = append(candidates, entityCandidates(text, recognizer)...)
	candidates = append(candidates, headerCandidates(text)...)
	candidates = append(candidates, emailCandidates(text)...)

	firstLine := leadingLine(text)
	for _, rule := range nameRules {
		if name, ok := rule.pick(candidates, firstLine); ok {
			return name, rule.name
		}
	}
	return types.NameNotFound, "none"
}

// entityCandidates keeps recognizer hits that contain no place or institution token
func entityCandidates(text string, recognizer EntityRecognizer) []string {
	if recognizer == nil {
		return nil
	}
	var out []string
	for _, name := range recognizer.PersonNames(text) {
		ok := true
		for _, w := range strings.Fields(name) {
			if entityStopwords[strings.ToLower(w)] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, name)
		}
	}
	return out
}

// headerCandidates scans the first non-empty lines for 2-3 capitalised words
func headerCandidates(text string) []string {
	var out []string
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		if seen == headerLineCount {
			break
		}
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		seen++

		if matchesAny(nameSkipRegexps, strings.ToLower(clean)) {
			continue
		}
		words := strings.Fields(clean)
		if len(words) < 2 || len(words) > 3 {
			continue
		}
		var valid []string
		for _, w := range words {
			if isNameWord(w) {
				valid = append(valid, w)
			}
		}
		if len(valid) >= 2 && len(valid) <= 3 {
			out = append(out, strings.Join(valid, " "))
		}
	}
	return out
}

func isNameWord(w string) bool {
	if !isAlpha(w) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(w)
	if !unicode.IsUpper(first) {
		return false
	}
	n := utf8.RuneCountInString(w)
	if n < 2 || n > 15 {
		return false
	}
	return !nonNameWords[strings.ToLower(w)]
}

// emailCandidates turns a "first.last" email local part into "First Last"
func emailCandidates(text string) []string {
	var out []string
	for _, m := range emailLocalPattern.FindAllStringSubmatch(text, -1) {
		parts := strings.Split(m[1], ".")
		if len(parts) != 2 || !isAlpha(parts[0]) || !isAlpha(parts[1]) {
			continue
		}
		out = append(out, capitalize(parts[0])+" "+capitalize(parts[1]))
	}
	return out
}

func pickLongestOnFirstLine(candidates []string, firstLine string) (string, bool) {
	best := ""
	for _, c := range candidates {
		if strings.Contains(firstLine, c) && len(c) > len(best) {
			best = c
		}
	}
	return best, best != ""
}

func pickPlausibleShape(candidates []string, _ string) (string, bool) {
	for _, c := range candidates {
		words := strings.Fields(c)
		if len(words) < 2 || len(words) > 3 || utf8.RuneCountInString(c) > 30 {
			continue
		}
		lower := strings.ToLower(c)
		disallowed := false
		for _, frag := range disallowedNameFragments {
			if strings.Contains(lower, frag) {
				disallowed = true
				break
			}
		}
		if !disallowed {
			return c, true
		}
	}
	return "", false
}

func pickFirstFound(candidates []string, _ string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0], true
}

// leadingLine is the document's first line, trimmed. A blank first line stays
// blank, so the first-line rule cannot match and selection falls through.
func leadingLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
