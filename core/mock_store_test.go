package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"gorm.io/datatypes"
)

var errStoreDown = errors.New("store unreachable")

type fakeScans struct {
	scans []model.ScanEvent
	err   error
}

func (f *fakeScans) inWindow(from, to time.Time) []model.ScanEvent {
	out := utils.Filter(f.scans, func(s model.ScanEvent) bool {
		return !s.CheckTime.Before(from) && s.CheckTime.Before(to)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckTime.Before(out[j].CheckTime) })
	return out
}

func (f *fakeScans) ListScans(_ context.Context, from, to time.Time) ([]model.ScanEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inWindow(from, to), nil
}

func (f *fakeScans) DistinctEmployeeCodes(_ context.Context, from, to time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	codes := utils.Unique(utils.Map(f.inWindow(from, to), func(s model.ScanEvent) string { return s.EmployeeCode }))
	sort.Strings(codes)
	return codes, nil
}

func (f *fakeScans) CountScans(_ context.Context, from, to time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.inWindow(from, to))), nil
}

type fakeShifts struct {
	shifts []model.Shift
	err    error
}

func (f *fakeShifts) ListShifts(context.Context) ([]model.Shift, error) {
	return f.shifts, f.err
}

type fakeWorkRecords struct {
	records map[string]model.WorkRecord
	failOn  map[int]bool
	calls   int
}

func newFakeWorkRecords() *fakeWorkRecords {
	return &fakeWorkRecords{records: map[string]model.WorkRecord{}, failOn: map[int]bool{}}
}

func (f *fakeWorkRecords) UpsertWorkRecords(_ context.Context, records []model.WorkRecord) error {
	call := f.calls
	f.calls++
	if f.failOn[call] {
		return errStoreDown
	}
	for _, r := range records {
		f.records[r.EmployeeCode+"|"+utils.DateKey(r.WorkDate)] = r
	}
	return nil
}

type fakeEmployees struct {
	byCode map[string]model.Employee
	err    error
}

func newFakeEmployees(codes ...string) *fakeEmployees {
	f := &fakeEmployees{byCode: map[string]model.Employee{}}
	for i, code := range codes {
		f.byCode[code] = model.Employee{ID: uint(i + 1), Code: code, DisplayName: "Employee " + code}
	}
	return f
}

func (f *fakeEmployees) FindEmployeesByCodes(_ context.Context, codes []string) ([]model.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Employee
	for _, c := range codes {
		if e, ok := f.byCode[c]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCredits struct {
	rows   map[string]*model.MealCredit
	failOn map[int]bool
	calls  int
}

func newFakeCredits() *fakeCredits {
	return &fakeCredits{rows: map[string]*model.MealCredit{}, failOn: map[int]bool{}}
}

func creditKey(employeeID uint, date datatypes.Date) string {
	return fmt.Sprintf("%d|%s", employeeID, utils.DateKey(date))
}

func (f *fakeCredits) GrantMealCredits(_ context.Context, credits []model.MealCredit, grantOT bool) error {
	call := f.calls
	f.calls++
	if f.failOn[call] {
		return errStoreDown
	}
	for _, c := range credits {
		key := creditKey(c.EmployeeID, c.Date)
		if existing, ok := f.rows[key]; ok {
			existing.LunchAvailable = true
			if grantOT {
				existing.OTMealAvailable = true
			}
			continue
		}
		row := c
		f.rows[key] = &row
	}
	return nil
}

func (f *fakeCredits) ListMealCredits(_ context.Context, date datatypes.Date) ([]model.MealCredit, error) {
	var out []model.MealCredit
	for _, row := range f.rows {
		if utils.DateKey(row.Date) == utils.DateKey(date) {
			out = append(out, *row)
		}
	}
	return out, nil
}

var (
	dayShift = model.Shift{
		Name:         ShiftDay,
		StartTime:    "08:00",
		EndTime:      "17:00",
		OTStartTime:  "17:30",
		BreakMinutes: 60,
	}
	eveningShift = model.Shift{
		Name:         ShiftEvening,
		StartTime:    "15:00",
		EndTime:      "23:00",
		OTStartTime:  "23:30",
		BreakMinutes: 60,
	}
	nightShift = model.Shift{
		Name:            ShiftNight,
		StartTime:       "20:00",
		EndTime:         "05:00",
		OTStartTime:     "05:30",
		CrossesMidnight: true,
		BreakMinutes:    60,
	}
)

func scan(id, code string, t time.Time) model.ScanEvent {
	return model.ScanEvent{ID: id, EmployeeCode: code, CheckTime: t.UTC(), DeviceID: "gate-1"}
}
