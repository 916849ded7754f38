package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads every record. Rows may have differing field counts since
// terminal exports append optional columns.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}
