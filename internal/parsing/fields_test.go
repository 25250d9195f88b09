package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerview/internal/types"
)

func TestExtractContactInfo(t *testing.T) {
	text := "Reach me at jane.doe@example.com or (519) 555-0123.\nlinkedin.com/in/JaneDoe | github.com/jdoe"
	info := extractContactInfo(text)

	require.NotNil(t, info.Email)
	assert.Equal(t, "jane.doe@example.com", *info.Email)
	require.NotNil(t, info.Phone)
	assert.Equal(t, "(519) 555-0123", *info.Phone)
	require.NotNil(t, info.LinkedIn)
	assert.Equal(t, "linkedin.com/in/janedoe", *info.LinkedIn)
	require.NotNil(t, info.GitHub)
	assert.Equal(t, "github.com/jdoe", *info.GitHub)
}

func TestExtractContactInfo_Absent(t *testing.T) {
	info := extractContactInfo("no contact details here")
	assert.Nil(t, info.Email)
	assert.Nil(t, info.Phone)
	assert.Nil(t, info.LinkedIn)
	assert.Nil(t, info.GitHub)
}

func TestExtractContactInfo_FirstMatchWins(t *testing.T) {
	info := extractContactInfo("a@x.io b@y.io +1 416-555-0199 905-555-0100")
	assert.Equal(t, "a@x.io", *info.Email)
	assert.Equal(t, "+1 416-555-0199", *info.Phone)
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		recognizer EntityRecognizer
		want       string
		rule       string
	}{
		{
			name: "first line name",
			text: "Jane Doe\nSoftware Engineer",
			want: "Jane Doe",
			rule: "longest-on-first-line",
		},
		{
			name: "blank first line skips the first-line rule",
			text: "\n  \nJane Doe\nSoftware Engineer",
			want: "Jane Doe",
			rule: "plausible-shape",
		},
		{
			name: "email local part",
			text: "Resume\njohn.smith@mail.com",
			want: "John Smith",
			rule: "plausible-shape",
		},
		{
			name:       "longest candidate on first line",
			text:       "Dr Jane Marie Doe\nSummary",
			recognizer: stubRecognizer{names: []string{"Jane", "Jane Marie Doe"}},
			want:       "Jane Marie Doe",
			rule:       "longest-on-first-line",
		},
		{
			name:       "recognizer hits with places are dropped",
			text:       "PROFILE\nalice wong builds things",
			recognizer: stubRecognizer{names: []string{"Toronto Ontario", "Alice Wong"}},
			want:       "Alice Wong",
			rule:       "plausible-shape",
		},
		{
			name:       "disallowed fragment falls through to first found",
			text:       "about\nstuff",
			recognizer: stubRecognizer{names: []string{"Acme Corp"}},
			want:       "Acme Corp",
			rule:       "first-found",
		},
		{
			name: "no candidates",
			text: "experience: lots",
			want: types.NameNotFound,
			rule: "none",
		},
		{
			name: "skip patterns reject contact lines",
			text: "Call 519-555-0123 Now\nwww Site Here",
			want: types.NameNotFound,
			rule: "none",
		},
		{
			name: "stoplist words are not names",
			text: "Technical Skills Summary\nCareer Objective",
			want: types.NameNotFound,
			rule: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := extractName(tt.text, tt.recognizer)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestHeaderCandidates_OnlyFirstFiveLines(t *testing.T) {
	text := "one\ntwo\nthree\nfour\nfive\nJane Doe"
	assert.Empty(t, headerCandidates(text))

	text = "\n\none\ntwo\nthree\nfour\nJane Doe"
	assert.Equal(t, []string{"Jane Doe"}, headerCandidates(text))
}

func TestEmailCandidates(t *testing.T) {
	assert.Equal(t, []string{"John Doe"}, emailCandidates("JOHN.DOE@x.com"))
	assert.Empty(t, emailCandidates("john@x.com"))
	assert.Empty(t, emailCandidates("john.m.doe@x.com"))
	assert.Empty(t, emailCandidates("john.doe2@x.com"))
}

func TestExtractSkills(t *testing.T) {
	found := extractSkills("I write PYTHON and react apps")

	byCat := map[string][]string{}
	for _, c := range found {
		byCat[c.Category] = c.Skills
	}
	assert.Contains(t, byCat["programming_languages"], "Python")
	assert.Contains(t, byCat["web_technologies"], "React")

	count := 0
	for _, c := range found {
		for _, s := range c.Skills {
			if s == "Python" {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
}

func TestSkillTable_PhrasesAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, cat := range skillTable {
		for _, p := range cat.Phrases {
			prev, dup := seen[p]
			assert.False(t, dup, "%q in both %s and %s", p, prev, cat.Name)
			seen[p] = cat.Name
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"node.js":          "Node.Js",
		"c++":              "C++",
		"ci/cd":            "Ci/Cd",
		"machine learning": "Machine Learning",
		"objective-c":      "Objective-C",
		"asp.net":          "Asp.Net",
		"2d game":          "2D Game",
		"SQL SERVER":       "Sql Server",
	}
	for in, want := range tests {
		assert.Equal(t, want, titleCase(in), in)
	}
}
