package terminal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"axiapac.com/timeclock/utils"
)

// ObjectReader fetches an object from blob storage.
type ObjectReader interface {
	ReadFile(ctx context.Context, bucket string, key string, w io.Writer) error
}

// ExportReader reads attendance exports that terminals drop as CSV, either on
// local disk or as s3://bucket/key objects. Exports carry no user roster.
type ExportReader struct {
	objects ObjectReader
}

func NewExportReader(objects ObjectReader) *ExportReader {
	return &ExportReader{objects: objects}
}

var (
	codeHeaders  = []string{"user_id", "userid", "employee_code", "pin"}
	timeHeaders  = []string{"record_time", "timestamp", "check_time"}
	stateHeaders = []string{"state", "status"}
)

func (r *ExportReader) FetchAllEvents(ctx context.Context, address string) ([]RawEvent, error) {
	data, err := r.read(ctx, address)
	if err != nil {
		return nil, err
	}
	return ParseExportCSV(bytes.NewReader(data))
}

func (r *ExportReader) FetchAllUsers(context.Context, string) ([]RawUser, error) {
	return nil, nil
}

func (r *ExportReader) read(ctx context.Context, address string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(address, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid s3 address %q", address)
		}
		if r.objects == nil {
			return nil, fmt.Errorf("no object storage configured for %s", address)
		}
		var buf bytes.Buffer
		if err := r.objects.ReadFile(ctx, bucket, key, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	data, err := os.ReadFile(address)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", address, err)
	}
	return data, nil
}

// ParseExportCSV reads an export with a header row. Columns are located by
// header name; rows too short to hold them are kept with empty values so
// the caller can count them as discarded.
func ParseExportCSV(r io.Reader) ([]RawEvent, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	codeCol := findColumn(header, codeHeaders)
	timeCol := findColumn(header, timeHeaders)
	stateCol := findColumn(header, stateHeaders)
	if codeCol < 0 || timeCol < 0 {
		return nil, fmt.Errorf("export header %v: missing user or time column", header)
	}

	events := make([]RawEvent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		event := RawEvent{
			EmployeeCode: cell(row, codeCol),
			Timestamp:    cell(row, timeCol),
		}
		if state, err := strconv.Atoi(cell(row, stateCol)); err == nil {
			event.RawState = &state
		}
		events = append(events, event)
	}
	return events, nil
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
