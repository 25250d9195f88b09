package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/careerview/internal/types"
)

func TestMatchesXLSX(t *testing.T) {
	record := &types.CareerMatchesRecord{
		UserID: "default_user",
		Matches: []types.CareerMatch{
			{
				CareerID:        "data_analyst",
				Title:           "Data Analyst",
				MatchPercentage: 65,
				MatchedSkills:   []string{"Excel", "SQL"},
				NextSteps:       []string{"Learn SQL", "Practice with datasets"},
			},
			{CareerID: "project_manager", Title: "Project Manager", MatchPercentage: 60},
		},
	}

	data, err := MatchesXLSX(record)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{MatchesSheet}, f.GetSheetList())

	rows, err := f.GetRows(MatchesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, matchHeaders, rows[0])
	assert.Equal(t, "data_analyst", rows[1][0])
	assert.Equal(t, "65", rows[1][2])
	assert.Equal(t, "Excel, SQL", rows[1][5])
	assert.Equal(t, "Learn SQL; Practice with datasets", rows[1][9])
	assert.Equal(t, "Project Manager", rows[2][1])
}

func TestMatchesWorkbook_NoMatches(t *testing.T) {
	f, err := MatchesWorkbook(&types.CareerMatchesRecord{})
	require.NoError(t, err)
	rows, err := f.GetRows(MatchesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
