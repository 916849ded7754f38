// Package ingest pulls attendance logs from terminals into scan_events.
// Terminals only return their full log, so every sync re-reads it and relies
// on the cutoff window plus idempotent upserts to stay cheap and safe.
package ingest

import (
	"context"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/terminal"
)

type Terminal interface {
	FetchAllEvents(ctx context.Context, address string) ([]terminal.RawEvent, error)
	FetchAllUsers(ctx context.Context, address string) ([]terminal.RawUser, error)
}

type ScanWriter interface {
	// UpsertScans inserts scans, skipping any that already exist, and returns
	// the number of new rows.
	UpsertScans(ctx context.Context, scans []model.ScanEvent) (int64, error)
}

type EmployeeDirectory interface {
	ListEmployeeCodes(ctx context.Context) ([]string, error)
	// ProvisionEmployees creates employees whose code does not exist yet.
	ProvisionEmployees(ctx context.Context, employees []model.Employee) (int64, error)
}

type Device struct {
	ID      string
	Name    string
	Address string
	// Location is the zone the terminal's wall clock runs in. Nil means the
	// engine's configured location.
	Location *time.Location
	Terminal Terminal
}

type Options struct {
	EpochFloor  time.Time
	BatchSize   int
	Timeout     time.Duration
	Parallelism int
	Location    *time.Location
	Now         func() time.Time
}

type DeviceResult struct {
	DeviceID    string     `json:"deviceId"`
	Fetched     int        `json:"fetched"`
	Accepted    int        `json:"accepted"`
	Discarded   int        `json:"discarded"`
	NewEvents   int64      `json:"newEvents"`
	Provisioned int64      `json:"provisioned"`
	Cursor      *time.Time `json:"cursor,omitempty"`
	Advanced    bool       `json:"advanced"`
	Errors      []string   `json:"errors"`
}

type SyncResult struct {
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Devices    []DeviceResult `json:"devices"`
	Errors     []string       `json:"errors"`
}

func (r *SyncResult) NewEvents() int64 {
	var n int64
	for _, d := range r.Devices {
		n += d.NewEvents
	}
	return n
}

func (r *SyncResult) Failed() bool {
	if len(r.Errors) > 0 {
		return true
	}
	for _, d := range r.Devices {
		if len(d.Errors) > 0 {
			return true
		}
	}
	return false
}
