// Package export renders career matches as spreadsheets.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/careerview/internal/types"
)

// MatchesSheet is the name of the worksheet holding one row per match.
const MatchesSheet = "Matches"

var matchHeaders = []string{
	"Career ID",
	"Title",
	"Match %",
	"Description",
	"Why Good Fit",
	"Matched Skills",
	"Missing Skills",
	"Salary Range",
	"Growth Outlook",
	"Next Steps",
}

// MatchesWorkbook builds a workbook with a header row and one row per match.
func MatchesWorkbook(record *types.CareerMatchesRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(MatchesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	index, err := f.GetSheetIndex(MatchesSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range matchHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(MatchesSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, m := range record.Matches {
		values := []any{
			m.CareerID,
			m.Title,
			m.MatchPercentage,
			m.Description,
			m.WhyGoodFit,
			strings.Join(m.MatchedSkills, ", "),
			strings.Join(m.MissingSkills, ", "),
			m.SalaryRange,
			m.GrowthOutlook,
			strings.Join(m.NextSteps, "; "),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(MatchesSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(MatchesSheet, "A", "A", 22)
	_ = f.SetColWidth(MatchesSheet, "B", "B", 28)
	_ = f.SetColWidth(MatchesSheet, "C", "C", 10)
	_ = f.SetColWidth(MatchesSheet, "D", "E", 48)
	_ = f.SetColWidth(MatchesSheet, "F", "G", 36)
	_ = f.SetColWidth(MatchesSheet, "H", "J", 28)
	return f, nil
}

// MatchesXLSX returns the workbook bytes for record.
func MatchesXLSX(record *types.CareerMatchesRecord) ([]byte, error) {
	f, err := MatchesWorkbook(record)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
