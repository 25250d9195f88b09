package careers

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/careerview/internal/extraction"
)

const (
	debugLines   = 10
	debugPreview = 500
)

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// ResumeDebug is a look at the raw text of the last upload.
type ResumeDebug struct {
	Filename       string   `json:"filename"`
	FirstLines     []string `json:"first_10_lines"`
	YearsFound     []string `json:"all_years_found"`
	RawTextLength  int      `json:"raw_text_length"`
	RawTextPreview string   `json:"raw_text_preview"`
}

// DebugLastResume extracts the last stored document again and reports what the
// field extractors will see.
func (s *Service) DebugLastResume(ctx context.Context) (*ResumeDebug, error) {
	upload, err := s.LatestUpload(ctx)
	if err != nil {
		return nil, err
	}
	format, err := extraction.FormatFromContentType(upload.Info.ContentType)
	if err != nil {
		format, err = extraction.FormatFromFilename(upload.Info.Filename)
		if err != nil {
			return nil, err
		}
	}
	text, err := s.extractor.Extract(format, upload.Content)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	if len(lines) > debugLines {
		lines = lines[:debugLines]
	}
	preview := text
	if r := []rune(text); len(r) > debugPreview {
		preview = string(r[:debugPreview]) + "..."
	}
	years := yearPattern.FindAllString(text, -1)
	if years == nil {
		years = []string{}
	}
	return &ResumeDebug{
		Filename:       upload.Info.Filename,
		FirstLines:     lines,
		YearsFound:     years,
		RawTextLength:  len(text),
		RawTextPreview: preview,
	}, nil
}
