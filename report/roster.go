package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"axiapac.com/timeclock/utils"
	"github.com/xuri/excelize/v2"
)

// Header names that identify the employee code column, in priority order.
var rosterCodeHeaders = []string{"รหัสพนักงาน", "employee_code", "รหัส", "pin", "code", "employee id", "id"}

// ParseOTRoster reads employee codes from the first sheet of an xlsx roster,
// or from a csv when the filename says so. The first row is the header; when
// no known header is present the first column is used.
func ParseOTRoster(r io.Reader, filename string) ([]string, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = utils.ParseCSV(r)
	default:
		rows, err = readFirstSheet(r)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []string{}, nil
	}

	col := rosterCodeColumn(rows[0])
	codes := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		if code := strings.TrimSpace(row[col]); code != "" {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func readFirstSheet(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func rosterCodeColumn(header []string) int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	for _, want := range rosterCodeHeaders {
		for i, h := range normalized {
			if h == want {
				return i
			}
		}
	}
	return 0
}
