package persona

import (
	"regexp"
	"strings"
)

var (
	sentenceMarks = regexp.MustCompile(`[.!?]+`)
	clauseMarks   = regexp.MustCompile(`[,;:]+`)
	quoteMarks    = regexp.MustCompile(`["']+`)
	spaceRuns     = regexp.MustCompile(`\s+`)
	nonWord       = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

var textingReplacer = strings.NewReplacer(
	" you ", " u ",
	" your ", " ur ",
	" youre ", " ur ",
	" youll ", " ull ",
)

// TextingStyle rewrites a reply as lowercase, punctuation-free texting.
func TextingStyle(s string) string {
	out := strings.ToLower(s)
	out = sentenceMarks.ReplaceAllString(out, "")
	out = clauseMarks.ReplaceAllString(out, "")
	out = quoteMarks.ReplaceAllString(out, "")
	out = spaceRuns.ReplaceAllString(out, " ")
	out = textingReplacer.Replace(out)
	out = nonWord.ReplaceAllString(out, "")
	out = spaceRuns.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
