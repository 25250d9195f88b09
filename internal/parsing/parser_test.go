package parsing

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerview/internal/types"
)

func clockAt(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
}

type stubRecognizer struct {
	names []string
}

func (s stubRecognizer) PersonNames(string) []string { return s.names }

const sampleResume = "John Smith\nSoftware Engineer Intern at Acme 2023\nSkills: Python, React"

func TestParse_EndToEnd(t *testing.T) {
	p := New(WithClock(clockAt(2024)))

	facts, err := p.Parse(sampleResume)
	require.NoError(t, err)

	assert.Equal(t, "John Smith", facts.Name)
	assert.Contains(t, facts.JobTitles, "Software Engineer Intern at Acme 2023")
	assert.Contains(t, facts.Skills.AllSkills, "Python")
	assert.Contains(t, facts.Skills.AllSkills, "React")
	assert.Equal(t, LabelInternship, facts.ExperienceYears)
	assert.Equal(t, types.ParsingSuccess, facts.ParsingStatus)
	assert.Equal(t, len(sampleResume), facts.RawTextLength)
}

func TestParse_EmptyDocument(t *testing.T) {
	p := New()
	for _, in := range []string{"", "   ", "\n\t \n"} {
		facts, err := p.Parse(in)
		assert.Nil(t, facts)
		assert.True(t, errors.Is(err, ErrEmptyDocument))
	}
}

func TestParse_TotalCountMatchesAllSkills(t *testing.T) {
	p := New(WithClock(clockAt(2025)))
	inputs := []string{
		sampleResume,
		"Hello Sam",
		"Go and Rust on AWS with Docker, Kubernetes and PostgreSQL. Agile team leadership.",
	}
	for _, in := range inputs {
		facts, err := p.Parse(in)
		require.NoError(t, err)
		assert.Equal(t, len(facts.Skills.AllSkills), facts.Skills.TotalCount)

		flattened := 0
		for _, cat := range SkillCategories() {
			flattened += len(facts.Skills.ByCategory[cat])
		}
		assert.Equal(t, facts.Skills.TotalCount, flattened)
	}
}

func TestParse_NoSkills(t *testing.T) {
	facts, err := New().Parse("Hello Sam")
	require.NoError(t, err)
	assert.Empty(t, facts.Skills.ByCategory)
	assert.NotNil(t, facts.Skills.AllSkills)
	assert.Equal(t, 0, facts.Skills.TotalCount)
}

func TestParse_AllSkillsFollowTableOrder(t *testing.T) {
	facts, err := New().Parse("Agile shop using PostgreSQL, Docker and Python")
	require.NoError(t, err)

	var order []string
	for _, cat := range SkillCategories() {
		order = append(order, facts.Skills.ByCategory[cat]...)
	}
	assert.Equal(t, order, facts.Skills.AllSkills)
}

func TestParse_NameNeverEmpty(t *testing.T) {
	p := New()
	for _, in := range []string{"experience: lots", "x", sampleResume, "ALL CAPS HEADER"} {
		facts, err := p.Parse(in)
		require.NoError(t, err)
		assert.NotEmpty(t, facts.Name)
	}
}

func TestParse_JSONRoundTrip(t *testing.T) {
	facts, err := New(WithClock(clockAt(2025))).Parse(sampleResume + "\njohn.smith@example.com\nlinkedin.com/in/jsmith")
	require.NoError(t, err)

	data, err := json.Marshal(facts)
	require.NoError(t, err)

	var decoded types.ResumeFacts
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *facts, decoded)
}

func TestParse_Idempotent(t *testing.T) {
	p := New(WithClock(clockAt(2025)), WithRecognizer(stubRecognizer{names: []string{"John Smith"}}))
	first, err := p.Parse(sampleResume)
	require.NoError(t, err)
	second, err := p.Parse(sampleResume)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_RawTextLengthCountsRunes(t *testing.T) {
	facts, err := New().Parse("Zoë")
	require.NoError(t, err)
	assert.Equal(t, 3, facts.RawTextLength)
}

func TestParse_UsesRecognizer(t *testing.T) {
	p := New(WithRecognizer(stubRecognizer{names: []string{"Waterloo Region", "Alice Wong"}}))
	facts, err := p.Parse("PROFILE\nalice wong builds things")
	require.NoError(t, err)
	assert.Equal(t, "Alice Wong", facts.Name)
}
