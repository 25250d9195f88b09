// Package types provides type definitions for structured data used throughout careerview.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParsingStatus reports whether a résumé was parsed successfully
type ParsingStatus string

const (
	// ParsingSuccess marks facts produced by a complete parse
	ParsingSuccess ParsingStatus = "success"
	// ParsingFailed marks the placeholder facts returned when parsing failed
	ParsingFailed ParsingStatus = "failed"
)

// NameNotFound is the sentinel used when no candidate name was detected
const NameNotFound = "Not found"

// ExperienceNotSpecified is the label used when the text carries no date evidence
const ExperienceNotSpecified = "Not specified"

// ResumeFacts is the structured record extracted from a résumé
type ResumeFacts struct {
	Name            string        `json:"name"`
	ContactInfo     ContactInfo   `json:"contact_info"`
	Skills          Skills        `json:"skills"`
	ExperienceYears string        `json:"experience_years"`
	JobTitles       []string      `json:"job_titles"`
	Education       []string      `json:"education"`
	RawTextLength   int           `json:"raw_text_length"`
	ParsingStatus   ParsingStatus `json:"parsing_status"`
}

// ContactInfo holds the first match of each contact channel; nil means absent
type ContactInfo struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

// Skills groups detected skill phrases by category.
// AllSkills is ByCategory flattened in category-table order.
type Skills struct {
	ByCategory map[string][]string `json:"by_category"`
	AllSkills  []string            `json:"all_skills"`
	TotalCount int                 `json:"total_count"`
}

// FailedResumeFacts returns the placeholder record reported when a résumé could not be parsed
func FailedResumeFacts() *ResumeFacts {
	return &ResumeFacts{
		Name: NameNotFound,
		Skills: Skills{
			ByCategory: map[string][]string{},
			AllSkills:  []string{},
		},
		ExperienceYears: ExperienceNotSpecified,
		JobTitles:       []string{},
		Education:       []string{},
		ParsingStatus:   ParsingFailed,
	}
}

// TopSkills returns at most n skills from AllSkills
func (f *ResumeFacts) TopSkills(n int) []string {
	if len(f.Skills.AllSkills) <= n {
		return append([]string{}, f.Skills.AllSkills...)
	}
	return append([]string{}, f.Skills.AllSkills[:n]...)
}
