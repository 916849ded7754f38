package report

import (
	"bytes"
	"strings"
	"testing"

	"axiapac.com/timeclock/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildCreditWorkbook(t *testing.T) {
	credits := []model.MealCredit{
		{LunchAvailable: true, OTMealAvailable: true, LunchUsed: true, Employee: &model.Employee{Code: "101", DisplayName: "Somchai"}},
		{LunchAvailable: true, Employee: &model.Employee{Code: "102", DisplayName: "Unknown 102"}},
	}

	buf, err := BuildCreditWorkbook("2025-12-27", credits)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{creditSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(creditSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, creditHeaders, rows[0])

	cells := map[string]string{
		"A2": "1", "B2": "101", "C2": "Somchai", "D2": "Y", "E2": "Y", "F2": "Y", "G2": "",
		"A3": "2", "B3": "102", "C3": "Unknown 102", "D3": "Y", "E3": "", "F3": "",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(creditSheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	lunch, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", lunch)
	date, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-27", date)
}

func rosterWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseOTRoster_Workbook(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
		want []string
	}{
		{
			name: "thai header",
			rows: [][]interface{}{{"ชื่อ", "รหัสพนักงาน"}, {"Somchai", "101"}, {"Malee", " 102 "}, {"blank", ""}},
			want: []string{"101", "102"},
		},
		{
			name: "pin header",
			rows: [][]interface{}{{"Name", "PIN"}, {"Somchai", 101}},
			want: []string{"101"},
		},
		{
			name: "first column fallback",
			rows: [][]interface{}{{"Worker", "Name"}, {"305", "Anan"}},
			want: []string{"305"},
		},
		{
			name: "header only",
			rows: [][]interface{}{{"code"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, err := ParseOTRoster(rosterWorkbook(t, tt.rows), "roster.xlsx")
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestParseOTRoster_CSV(t *testing.T) {
	codes, err := ParseOTRoster(strings.NewReader("name,employee_code\nSomchai,101\nMalee,102\n"), "OT.CSV")
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, codes)
}

func TestParseOTRoster_NotAWorkbook(t *testing.T) {
	_, err := ParseOTRoster(strings.NewReader("not a zip"), "roster.xlsx")
	assert.Error(t, err)
}
