// Package report renders meal credit workbooks and reads overtime rosters.
package report

import (
	"bytes"
	"fmt"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	creditSheet  = "Meal Credits"
	summarySheet = "Summary"
)

var creditHeaders = []string{"No", "Code", "Name", "Lunch", "OT Meal", "Lunch Used", "OT Meal Used"}

func WorkbookFilename(date string) string {
	return fmt.Sprintf("meal-credits-%s.xlsx", date)
}

func mark(b bool) string {
	return utils.FormatBoolean(b, "Y", "")
}

// BuildCreditWorkbook lists one row per credit plus a totals sheet.
func BuildCreditWorkbook(date string, credits []model.MealCredit) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(creditSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(creditSheet, "A1", &creditHeaders); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}
	_ = f.SetCellStyle(creditSheet, "A1", "G1", headerStyle)

	var lunch, otMeal, lunchUsed, otUsed int
	for i, c := range credits {
		code, name := "", ""
		if c.Employee != nil {
			code, name = c.Employee.Code, c.Employee.DisplayName
		}
		row := []interface{}{
			i + 1, code, name,
			mark(c.LunchAvailable), mark(c.OTMealAvailable),
			mark(c.LunchUsed), mark(c.OTMealUsed),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(creditSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}

		if c.LunchAvailable {
			lunch++
		}
		if c.OTMealAvailable {
			otMeal++
		}
		if c.LunchUsed {
			lunchUsed++
		}
		if c.OTMealUsed {
			otUsed++
		}
	}
	_ = f.SetColWidth(creditSheet, "B", "B", 14)
	_ = f.SetColWidth(creditSheet, "C", "C", 32)
	_ = f.SetColWidth(creditSheet, "D", "G", 12)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Date", date},
		{"Employees", len(credits)},
		{"Lunch", lunch},
		{"OT Meal", otMeal},
		{"Lunch Used", lunchUsed},
		{"OT Meal Used", otUsed},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", "A6", headerStyle)
	_ = f.SetColWidth(summarySheet, "A", "A", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}
