package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/terminal"
	"axiapac.com/timeclock/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchSize = 100

type Engine struct {
	scans     ScanWriter
	directory EmployeeDirectory
	cursors   *CursorStore
	known     *KnownCodes
	opts      Options
	logger    *zap.Logger
}

func NewEngine(scans ScanWriter, directory EmployeeDirectory, cursors *CursorStore, opts Options, logger *zap.Logger) *Engine {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		scans:     scans,
		directory: directory,
		cursors:   cursors,
		known:     NewKnownCodes(),
		opts:      opts,
		logger:    logger,
	}
}

// SyncAll syncs every device and persists cursors as they advance. An error is
// returned only when the run cannot start; device failures are in the result.
func (e *Engine) SyncAll(ctx context.Context, devices []Device) (*SyncResult, error) {
	state, err := e.cursors.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.known.Refresh(ctx, e.directory); err != nil {
		return nil, fmt.Errorf("failed to load employee codes: %w", err)
	}

	result := &SyncResult{
		StartedAt: e.opts.Now(),
		Devices:   make([]DeviceResult, len(devices)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(e.opts.Parallelism)

	for i, device := range devices {
		g.Go(func() error {
			mu.Lock()
			last, ok := state.Get(device.ID)
			mu.Unlock()

			var cursor *time.Time
			if ok {
				cursor = &last
			}

			dctx, cancel := e.deviceContext(ctx)
			defer cancel()
			res := e.SyncDevice(dctx, device, cursor)

			mu.Lock()
			defer mu.Unlock()
			if res.Advanced && state.Advance(device.ID, *res.Cursor) {
				if err := e.cursors.Save(ctx, state); err != nil {
					e.logger.Error("failed to save sync state", zap.String("device", device.ID), zap.Error(err))
					res.Errors = append(res.Errors, err.Error())
				}
			}
			result.Devices[i] = res
			return nil
		})
	}
	_ = g.Wait()

	result.FinishedAt = e.opts.Now()
	finished := result.FinishedAt
	state.LastRun = &finished
	if err := e.cursors.Save(ctx, state); err != nil {
		e.logger.Error("failed to save sync state", zap.Error(err))
		result.Errors = append(result.Errors, err.Error())
	}

	e.logger.Info("sync finished",
		zap.Int("devices", len(devices)),
		zap.Int64("newEvents", result.NewEvents()),
		zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)))
	return result, nil
}

func (e *Engine) deviceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.opts.Timeout)
}

// SyncDevice pulls one terminal's log and stores the new scans. The returned
// cursor only moves past the old one when every batch was written.
func (e *Engine) SyncDevice(ctx context.Context, device Device, cursor *time.Time) DeviceResult {
	result := DeviceResult{DeviceID: device.ID, Cursor: cursor, Errors: []string{}}
	logger := e.logger.With(zap.String("device", device.ID), zap.String("address", device.Address))

	raw, err := device.Terminal.FetchAllEvents(ctx, device.Address)
	if err != nil {
		logger.Error("failed to fetch events", zap.Error(err))
		result.Errors = append(result.Errors, fmt.Sprintf("fetch events: %v", err))
		return result
	}
	result.Fetched = len(raw)

	now := e.opts.Now().In(e.opts.Location)
	cutoff := Cutoff(now, cursor, e.opts.EpochFloor, e.opts.Location)
	tomorrow := utils.StartOfDay(now).AddDate(0, 0, 1)

	scans := e.filter(device, raw, cutoff, tomorrow)
	result.Accepted = len(scans)
	result.Discarded = result.Fetched - result.Accepted
	logger.Debug("events filtered",
		zap.Int("fetched", result.Fetched),
		zap.Int("accepted", result.Accepted),
		zap.Time("cutoff", cutoff))

	if len(scans) == 0 {
		return result
	}

	result.Provisioned = e.provision(ctx, device, scans, logger)

	failed := false
	for _, batch := range utils.Chunk(scans, e.opts.BatchSize) {
		n, err := e.scans.UpsertScans(ctx, batch)
		if err != nil {
			failed = true
			logger.Error("failed to store scan batch", zap.Int("size", len(batch)), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("store batch: %v", err))
			continue
		}
		result.NewEvents += n
	}

	if !failed && result.NewEvents > 0 {
		latest := scans[len(scans)-1].CheckTime
		if cursor == nil || latest.After(*cursor) {
			result.Cursor = &latest
			result.Advanced = true
		}
	}

	logger.Info("device synced",
		zap.Int("accepted", result.Accepted),
		zap.Int64("new", result.NewEvents),
		zap.Int64("provisioned", result.Provisioned),
		zap.Bool("advanced", result.Advanced))
	return result
}

// filter drops unusable, out-of-window and repeated events and returns the
// rest sorted by check time.
func (e *Engine) filter(device Device, raw []terminal.RawEvent, cutoff, tomorrow time.Time) []model.ScanEvent {
	loc := device.Location
	if loc == nil {
		loc = e.opts.Location
	}

	seen := make(map[string]struct{}, len(raw))
	scans := make([]model.ScanEvent, 0, len(raw))
	for _, ev := range raw {
		if ev.EmployeeCode == "" {
			continue
		}
		t, err := utils.ParseLocalTime(ev.Timestamp, loc)
		if err != nil {
			continue
		}
		if t.Before(cutoff) || !t.Before(tomorrow) {
			continue
		}

		key := fmt.Sprintf("%s|%d", ev.EmployeeCode, t.UnixNano())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		scans = append(scans, model.ScanEvent{
			ID:           uuid.NewString(),
			EmployeeCode: ev.EmployeeCode,
			CheckTime:    t.UTC(),
			DeviceID:     device.ID,
			RawState:     ev.RawState,
		})
	}

	sort.SliceStable(scans, func(i, j int) bool {
		return scans[i].CheckTime.Before(scans[j].CheckTime)
	})
	return scans
}

// provision creates placeholder employees for codes the directory has never
// seen. Failures are logged only; scans are stored regardless.
func (e *Engine) provision(ctx context.Context, device Device, scans []model.ScanEvent, logger *zap.Logger) int64 {
	if !e.known.Loaded() {
		if err := e.known.Refresh(ctx, e.directory); err != nil {
			logger.Warn("failed to load employee codes", zap.Error(err))
			return 0
		}
	}

	codes := utils.Unique(utils.Map(scans, func(s model.ScanEvent) string { return s.EmployeeCode }))
	missing := e.known.Missing(codes)
	if len(missing) == 0 {
		return 0
	}

	names := map[string]string{}
	users, err := device.Terminal.FetchAllUsers(ctx, device.Address)
	if err != nil {
		logger.Warn("failed to fetch terminal users", zap.Error(err))
	}
	for _, u := range users {
		names[u.Code] = u.Name
	}

	employees := make([]model.Employee, 0, len(missing))
	for _, code := range missing {
		attrs, _ := json.Marshal(model.ProvisionAttributes{
			SourceDevice: device.ID,
			TerminalName: names[code],
		})
		employees = append(employees, model.Employee{
			Code:        code,
			DisplayName: "Unknown " + code,
			Provisional: true,
			Attributes:  attrs,
		})
	}

	n, err := e.directory.ProvisionEmployees(ctx, employees)
	if err != nil {
		logger.Warn("failed to provision employees", zap.Strings("codes", missing), zap.Error(err))
		return 0
	}
	e.known.Add(missing...)
	logger.Info("provisioned employees", zap.Strings("codes", missing))
	return n
}
