package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/careerview/internal/types"
)

var (
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	emailLocalPattern = regexp.MustCompile(`\b([A-Za-z0-9._%+-]+)@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern      = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	linkedInPattern   = regexp.MustCompile(`linkedin\.com/in/([A-Za-z0-9-]+)`)
	gitHubPattern     = regexp.MustCompile(`github\.com/([A-Za-z0-9-]+)`)
)

func extractContactInfo(text string) types.ContactInfo {
	var info types.ContactInfo

	if m := emailPattern.FindString(text); m != "" {
		info.Email = &m
	}
	if m := phonePattern.FindString(text); m != "" {
		info.Phone = &m
	}

	lower := strings.ToLower(text)
	if m := linkedInPattern.FindStringSubmatch(lower); m != nil {
		v := "linkedin.com/in/" + m[1]
		info.LinkedIn = &v
	}
	if m := gitHubPattern.FindStringSubmatch(lower); m != nil {
		v := "github.com/" + m[1]
		info.GitHub = &v
	}

	return info
}
