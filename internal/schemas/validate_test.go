package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CareerSuggestions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"minimal", `{"career_suggestions":[{"title":"Architect","career_id":"architect"}]}`, true},
		{"string percentage", `{"career_suggestions":[{"title":"Planner","match_percentage":"80"}]}`, true},
		{"missing list", `{"suggestions":[]}`, false},
		{"empty list", `{"career_suggestions":[]}`, false},
		{"career id not a string", `{"career_suggestions":[{"title":"X","career_id":1}]}`, false},
		{"skills not strings", `{"career_suggestions":[{"title":"X","matched_skills":[1,2]}]}`, false},
		{"not json", `{"career_suggestions":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(CareerSuggestions, tt.input)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidate_LearningPath(t *testing.T) {
	valid := `{
		"career_title": "Data Scientist",
		"learning_roadmap": {
			"immediate_steps": [{"skill": "Statistics", "courses": [{"name": "Stats 101"}]}]
		},
		"timeline_overview": {"0-3 months": ["Foundation skills"]}
	}`
	assert.NoError(t, Validate(LearningPath, valid))

	invalid := `{"career_title": "X", "learning_roadmap": {"immediate_steps": [{"priority": "High"}]}}`
	var ve *ValidationError
	require.ErrorAs(t, Validate(LearningPath, invalid), &ve)
	assert.Contains(t, ve.Error(), "skill")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", `{}`)
	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "nope.schema.json", le.Path)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))

	err := ValidateJSONString(schema, `{"name":1}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
