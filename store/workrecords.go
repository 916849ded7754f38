package store

import (
	"context"
	"fmt"

	"axiapac.com/timeclock/model"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func (s *Store) UpsertWorkRecords(ctx context.Context, records []model.WorkRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_code"}, {Name: "work_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"shift_name", "scan_in_id", "scan_out_id", "scan_in_time", "scan_out_time",
			"working_minutes", "ot_minutes", "status", "updated_at",
		}),
	}).Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to upsert work records: %w", err)
	}
	return nil
}

type WorkRecordFilter struct {
	StartDate    datatypes.Date
	EndDate      datatypes.Date
	EmployeeCode string
	Status       string
	Limit        int
	Offset       int
}

func (s *Store) SearchWorkRecords(ctx context.Context, filter WorkRecordFilter) ([]model.WorkRecord, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.WorkRecord{}).
		Where("work_date >= ? AND work_date <= ?", filter.StartDate, filter.EndDate)
	if filter.EmployeeCode != "" {
		query = query.Where("employee_code = ?", filter.EmployeeCode)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count work records: %w", err)
	}

	var records []model.WorkRecord
	err := paginate(query, filter.Limit, filter.Offset).
		Order("work_date, employee_code").
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search work records: %w", err)
	}
	return records, total, nil
}
