package core

import (
	"context"
	"time"

	"axiapac.com/timeclock/model"
	"gorm.io/datatypes"
)

type ScanReader interface {
	// ListScans returns scans with from <= check_time < to, ordered by check time.
	ListScans(ctx context.Context, from, to time.Time) ([]model.ScanEvent, error)
	DistinctEmployeeCodes(ctx context.Context, from, to time.Time) ([]string, error)
	CountScans(ctx context.Context, from, to time.Time) (int64, error)
}

type ShiftReader interface {
	ListShifts(ctx context.Context) ([]model.Shift, error)
}

type WorkRecordWriter interface {
	// UpsertWorkRecords overwrites any existing record for (employee_code, work_date).
	UpsertWorkRecords(ctx context.Context, records []model.WorkRecord) error
}

type EmployeeLookup interface {
	FindEmployeesByCodes(ctx context.Context, codes []string) ([]model.Employee, error)
}

type MealCreditStore interface {
	// GrantMealCredits inserts or raises availability for (employee_id, date).
	// It never touches the used flags and never lowers availability.
	GrantMealCredits(ctx context.Context, credits []model.MealCredit, grantOT bool) error
	ListMealCredits(ctx context.Context, date datatypes.Date) ([]model.MealCredit, error)
}
