package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonNames_OnlyPersonEntities(t *testing.T) {
	r := NewProseRecognizer(nil)

	names := r.PersonNames("Jane Doe joined Google in Toronto last year.")
	for _, n := range names {
		assert.NotEqual(t, "Google", n)
		assert.NotEqual(t, "Toronto", n)
	}
}

func TestPersonNames_Empty(t *testing.T) {
	assert.Empty(t, NewProseRecognizer(nil).PersonNames(""))
}

func TestPersonNames_EntitiesStayOnTheirLine(t *testing.T) {
	r := NewProseRecognizer(nil)

	tests := []struct {
		name string
		text string
		// words from different lines that must never share an entity
		first, second string
	}{
		{"header then title", "John Smith\nSoftware Engineer Intern at Acme 2023\nSkills: Python, React", "Smith", "Software"},
		{"name then city", "Jane Doe\nToronto, Ontario\njane.doe@example.com", "Doe", "Toronto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range r.PersonNames(tt.text) {
				assert.False(t, strings.Contains(n, tt.first) && strings.Contains(n, tt.second),
					"entity %q spans a line break", n)
				assert.NotContains(t, n, "\n")
			}
		})
	}
}

func TestPersonNames_ModelLoadedOnce(t *testing.T) {
	r := NewProseRecognizer(nil)
	r.PersonNames("Jane Doe")
	first, err := r.loadModel()
	assert.NoError(t, err)
	assert.NotNil(t, first)

	r.PersonNames("John Smith\nAlice Wong")
	second, _ := r.loadModel()
	assert.Same(t, first, second)
}
