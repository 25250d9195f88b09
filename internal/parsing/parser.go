// Package parsing turns raw résumé text into structured ResumeFacts using
// keyword tables and regular expressions.
package parsing

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/types"
)

// Parser runs the field extraction passes. It holds no per-call state and is
// safe for concurrent use.
type Parser struct {
	now        func() time.Time
	recognizer EntityRecognizer
	logger     *zap.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithClock sets the source of the current year used for experience inference
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRecognizer sets the person-name recognizer used as the first name source
func WithRecognizer(r EntityRecognizer) Option {
	return func(p *Parser) {
		p.recognizer = r
	}
}

// WithLogger sets the logger for parse summaries
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Parser
func New(opts ...Option) *Parser {
	p := &Parser{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts ResumeFacts from raw text. Blank input returns ErrEmptyDocument.
func (p *Parser) Parse(text string) (*types.ResumeFacts, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	byCategory := make(map[string][]string)
	allSkills := []string{}
	for _, cs := range extractSkills(text) {
		byCategory[cs.Category] = cs.Skills
		allSkills = append(allSkills, cs.Skills...)
	}

	name, rule := extractName(text, p.recognizer)

	facts := &types.ResumeFacts{
		Name:        name,
		ContactInfo: extractContactInfo(text),
		Skills: types.Skills{
			ByCategory: byCategory,
			AllSkills:  allSkills,
			TotalCount: len(allSkills),
		},
		ExperienceYears: inferExperience(text, p.now().Year()),
		JobTitles:       extractJobTitles(text),
		Education:       extractEducation(text),
		RawTextLength:   utf8.RuneCountInString(text),
		ParsingStatus:   types.ParsingSuccess,
	}

	p.logger.Debug("resume parsed",
		zap.String("name", facts.Name),
		zap.String("name_rule", rule),
		zap.Int("skills", facts.Skills.TotalCount),
		zap.String("experience", facts.ExperienceYears),
		zap.Int("job_titles", len(facts.JobTitles)),
		zap.Int("education", len(facts.Education)),
	)

	return facts, nil
}
