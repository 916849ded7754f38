// Package store is the gorm persistence layer. Every write is an upsert so a
// rerun of any pipeline step converges on the same rows.
package store

import (
	"errors"

	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/ingest"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var (
	_ core.ScanReader          = (*Store)(nil)
	_ core.ShiftReader         = (*Store)(nil)
	_ core.WorkRecordWriter    = (*Store)(nil)
	_ core.EmployeeLookup      = (*Store)(nil)
	_ core.MealCreditStore     = (*Store)(nil)
	_ ingest.ScanWriter        = (*Store)(nil)
	_ ingest.EmployeeDirectory = (*Store)(nil)
)
