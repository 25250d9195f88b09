// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/careerview/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to maxItemsToShow items and a "... and N more" tail.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s\n", heading)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// PrintResumeFacts outputs a human-readable summary of the parsed résumé.
func (p *Printer) PrintResumeFacts(facts *types.ResumeFacts) {
	if facts == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", facts.Name)
	fmt.Fprintf(&sb, "Email:       %s\n", valueOr(facts.ContactInfo.Email, "-"))
	fmt.Fprintf(&sb, "Phone:       %s\n", valueOr(facts.ContactInfo.Phone, "-"))
	fmt.Fprintf(&sb, "Experience:  %s\n", facts.ExperienceYears)
	fmt.Fprintf(&sb, "Status:      %s\n", facts.ParsingStatus)
	sb.WriteString("\n")

	if facts.Skills.TotalCount > 0 {
		fmt.Fprintf(&sb, "Skills (%d):\n", facts.Skills.TotalCount)
		categories := make([]string, 0, len(facts.Skills.ByCategory))
		for c := range facts.Skills.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Fprintf(&sb, "  %s: %s\n", c, strings.Join(facts.Skills.ByCategory[c], ", "))
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Job Titles:", facts.JobTitles)
	writeList(&sb, "Education:", facts.Education)

	p.printBox("PARSED RESUME", sb.String())
}

// PrintCareerMatches outputs the ranked career matches.
func (p *Printer) PrintCareerMatches(record *types.CareerMatchesRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "User:    %s\n", record.UserID)
	if record.BasedOnResume != "" {
		fmt.Fprintf(&sb, "Resume:  %s\n", record.BasedOnResume)
	}
	sb.WriteString("\n")

	for i, m := range record.Matches {
		fmt.Fprintf(&sb, "%d. %s (%.0f%%)\n", i+1, m.Title, m.MatchPercentage)
		if len(m.MatchedSkills) > 0 {
			fmt.Fprintf(&sb, "   Has:   %s\n", strings.Join(m.MatchedSkills[:min(len(m.MatchedSkills), maxItemsToShow)], ", "))
		}
		if len(m.MissingSkills) > 0 {
			fmt.Fprintf(&sb, "   Needs: %s\n", strings.Join(m.MissingSkills[:min(len(m.MissingSkills), maxItemsToShow)], ", "))
		}
		if m.SalaryRange != "" {
			fmt.Fprintf(&sb, "   Pay:   %s\n", m.SalaryRange)
		}
	}

	p.printBox(fmt.Sprintf("CAREER MATCHES (%d)", record.TotalMatches), sb.String())
}

// PrintCareerPath outputs the roadmap phases of a learning path.
func (p *Printer) PrintCareerPath(record *types.CareerPathRecord) {
	if record == nil {
		return
	}

	path := record.LearningPath
	var sb strings.Builder
	fmt.Fprintf(&sb, "Career:    %s\n", path.CareerTitle)
	if a := path.PersonalizedAssessment; a.EstimatedTimeline != "" {
		fmt.Fprintf(&sb, "Timeline:  %s\n", a.EstimatedTimeline)
	}
	if a := path.PersonalizedAssessment; a.EstimatedCost != "" {
		fmt.Fprintf(&sb, "Cost:      %s\n", a.EstimatedCost)
	}
	sb.WriteString("\n")

	phases := []struct {
		name  string
		steps []types.LearningStep
	}{
		{"Immediate:", path.LearningRoadmap.ImmediateSteps},
		{"Short term:", path.LearningRoadmap.ShortTermGoals},
		{"Long term:", path.LearningRoadmap.LongTermGoals},
	}
	for _, phase := range phases {
		items := make([]string, 0, len(phase.steps))
		for _, s := range phase.steps {
			item := s.Skill
			if s.Timeline != "" {
				item += " (" + s.Timeline + ")"
			}
			items = append(items, item)
		}
		writeList(&sb, phase.name, items)
	}
	writeList(&sb, "Next Actions:", path.NextActions)

	p.printBox("LEARNING PATH", sb.String())
}
