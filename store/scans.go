package store

import (
	"context"
	"fmt"
	"time"

	"axiapac.com/timeclock/model"
	"gorm.io/gorm/clause"
)

// UpsertScans inserts scans and skips rows already stored under the same
// (employee_code, check_time, device_id). It returns the number inserted.
func (s *Store) UpsertScans(ctx context.Context, scans []model.ScanEvent) (int64, error) {
	if len(scans) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_code"}, {Name: "check_time"}, {Name: "device_id"}},
		DoNothing: true,
	}).Create(&scans)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to insert scans: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) ListScans(ctx context.Context, from, to time.Time) ([]model.ScanEvent, error) {
	var scans []model.ScanEvent
	err := s.db.WithContext(ctx).
		Where("check_time >= ? AND check_time < ?", from.UTC(), to.UTC()).
		Order("check_time, employee_code").
		Find(&scans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return scans, nil
}

func (s *Store) DistinctEmployeeCodes(ctx context.Context, from, to time.Time) ([]string, error) {
	var codes []string
	err := s.db.WithContext(ctx).Model(&model.ScanEvent{}).
		Where("check_time >= ? AND check_time < ?", from.UTC(), to.UTC()).
		Distinct().
		Order("employee_code").
		Pluck("employee_code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scanned employees: %w", err)
	}
	return codes, nil
}

func (s *Store) CountScans(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ScanEvent{}).
		Where("check_time >= ? AND check_time < ?", from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}
	return count, nil
}
