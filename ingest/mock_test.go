package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/terminal"
)

var (
	bangkok      = time.FixedZone("ICT", 7*60*60)
	errOffline   = errors.New("terminal offline")
	errStoreDown = errors.New("store down")
)

type fakeTerminal struct {
	events   []terminal.RawEvent
	users    []terminal.RawUser
	err      error
	usersErr error
}

func (f *fakeTerminal) FetchAllEvents(context.Context, string) ([]terminal.RawEvent, error) {
	return f.events, f.err
}

func (f *fakeTerminal) FetchAllUsers(context.Context, string) ([]terminal.RawUser, error) {
	return f.users, f.usersErr
}

// blockingTerminal never answers before the caller gives up.
type blockingTerminal struct{}

func (blockingTerminal) FetchAllEvents(ctx context.Context, _ string) ([]terminal.RawEvent, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingTerminal) FetchAllUsers(ctx context.Context, _ string) ([]terminal.RawUser, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func event(code, ts string) terminal.RawEvent {
	return terminal.RawEvent{EmployeeCode: code, Timestamp: ts}
}

type fakeScanStore struct {
	mu     sync.Mutex
	rows   map[string]model.ScanEvent
	calls  int
	failOn map[int]bool
}

func newFakeScanStore() *fakeScanStore {
	return &fakeScanStore{rows: map[string]model.ScanEvent{}, failOn: map[int]bool{}}
}

func (f *fakeScanStore) UpsertScans(_ context.Context, scans []model.ScanEvent) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.calls
	f.calls++
	if f.failOn[call] {
		return 0, errStoreDown
	}

	var inserted int64
	for _, s := range scans {
		key := fmt.Sprintf("%s|%d|%s", s.EmployeeCode, s.CheckTime.UnixNano(), s.DeviceID)
		if _, ok := f.rows[key]; ok {
			continue
		}
		f.rows[key] = s
		inserted++
	}
	return inserted, nil
}

type fakeDirectory struct {
	mu           sync.Mutex
	codes        map[string]bool
	provisioned  []model.Employee
	listErr      error
	provisionErr error
}

func newFakeDirectory(codes ...string) *fakeDirectory {
	d := &fakeDirectory{codes: map[string]bool{}}
	for _, c := range codes {
		d.codes[c] = true
	}
	return d
}

func (f *fakeDirectory) ListEmployeeCodes(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	codes := make([]string, 0, len(f.codes))
	for c := range f.codes {
		codes = append(codes, c)
	}
	return codes, nil
}

func (f *fakeDirectory) ProvisionEmployees(_ context.Context, employees []model.Employee) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.provisionErr != nil {
		return 0, f.provisionErr
	}
	var n int64
	for _, e := range employees {
		if f.codes[e.Code] {
			continue
		}
		f.codes[e.Code] = true
		f.provisioned = append(f.provisioned, e)
		n++
	}
	return n, nil
}

type memBlob struct {
	mu      sync.Mutex
	docs    map[string][]byte
	readErr error
	writes  []string
}

func newMemBlob() *memBlob {
	return &memBlob{docs: map[string][]byte{}}
}

func (m *memBlob) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memBlob) Write(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = append([]byte(nil), data...)
	m.writes = append(m.writes, name)
	return nil
}
