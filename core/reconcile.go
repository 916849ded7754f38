package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"go.uber.org/zap"
)

var (
	ErrShiftNotConfigured = errors.New("shift not configured")
	ErrInvalidRange       = errors.New("end date is before start date")
)

const defaultWorkRecordChunk = 500

type ReconcileOptions struct {
	Rules     Rules
	Location  *time.Location
	ChunkSize int
}

type Reconciler struct {
	scans   ScanReader
	shifts  ShiftReader
	records WorkRecordWriter
	opts    ReconcileOptions
	logger  *zap.Logger
}

func NewReconciler(scans ScanReader, shifts ShiftReader, records WorkRecordWriter, opts ReconcileOptions, logger *zap.Logger) *Reconciler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultWorkRecordChunk
	}
	return &Reconciler{scans: scans, shifts: shifts, records: records, opts: opts, logger: logger}
}

type ReconcileResult struct {
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Scans      int      `json:"scans"`
	Groups     int      `json:"groups"`
	Processed  int      `json:"processed"`
	Complete   int      `json:"complete"`
	Incomplete int      `json:"incomplete"`
	Errors     []string `json:"errors"`
}

// Reconcile rebuilds work records from the scans between the calendar dates of
// startDate and endDate inclusive. Only failing to read scans or shifts is
// returned as an error; per-group and per-chunk failures land in Errors.
func (r *Reconciler) Reconcile(ctx context.Context, startDate, endDate time.Time) (*ReconcileResult, error) {
	from, _ := utils.DayWindow(startDate, r.opts.Location)
	_, to := utils.DayWindow(endDate, r.opts.Location)
	if to.Sub(from) <= 0 {
		return nil, ErrInvalidRange
	}

	result := &ReconcileResult{
		StartDate: startDate.Format(utils.DateLayout),
		EndDate:   endDate.Format(utils.DateLayout),
		Errors:    []string{},
	}

	shifts, err := r.shifts.ListShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts: %w", err)
	}
	shiftMap := make(map[string]model.Shift, len(shifts))
	for _, s := range shifts {
		shiftMap[s.Name] = s
	}

	scans, err := r.scans.ListScans(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load scans: %w", err)
	}
	result.Scans = len(scans)

	groups := GroupScans(scans, r.opts.Location)
	result.Groups = len(groups)

	records := make([]model.WorkRecord, 0, len(groups))
	for _, g := range groups {
		shiftName := g.ShiftName(r.opts.Location)
		shift, ok := shiftMap[shiftName]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("%v: %s for %s on %s", ErrShiftNotConfigured, shiftName, g.EmployeeCode, utils.DateKey(g.WorkDate)))
			continue
		}

		record, err := Aggregate(g.EmployeeCode, g.WorkDate, g.Scans, shift, r.opts.Rules, r.opts.Location)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s on %s: %v", g.EmployeeCode, utils.DateKey(g.WorkDate), err))
			continue
		}
		records = append(records, record)
	}

	for i, chunk := range utils.Chunk(records, r.opts.ChunkSize) {
		if err := r.records.UpsertWorkRecords(ctx, chunk); err != nil {
			r.logger.Error("work record chunk failed", zap.Int("chunk", i), zap.Int("size", len(chunk)), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("failed to save work records chunk %d: %v", i, err))
			continue
		}
		for _, rec := range chunk {
			result.Processed++
			if rec.Status == model.WorkRecordComplete {
				result.Complete++
			} else {
				result.Incomplete++
			}
		}
	}

	r.logger.Info("reconcile finished",
		zap.String("start", result.StartDate),
		zap.String("end", result.EndDate),
		zap.Int("scans", result.Scans),
		zap.Int("processed", result.Processed),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}
