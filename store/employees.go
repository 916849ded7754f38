package store

import (
	"context"
	"errors"
	"fmt"

	"axiapac.com/timeclock/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) ListEmployeeCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := s.db.WithContext(ctx).Model(&model.Employee{}).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list employee codes: %w", err)
	}
	return codes, nil
}

// ProvisionEmployees creates employees whose code is not taken yet and
// returns how many were created.
func (s *Store) ProvisionEmployees(ctx context.Context, employees []model.Employee) (int64, error) {
	if len(employees) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&employees)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to provision employees: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) FindEmployeesByCodes(ctx context.Context, codes []string) ([]model.Employee, error) {
	var employees []model.Employee
	if len(codes) == 0 {
		return employees, nil
	}
	if err := s.db.WithContext(ctx).Where("code IN ?", codes).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	return employees, nil
}

type EmployeeFilter struct {
	Provisional *bool
	Limit       int
	Offset      int
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Employee{})
	if filter.Provisional != nil {
		query = query.Where("provisional = ?", *filter.Provisional)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	var employees []model.Employee
	if err := paginate(query, filter.Limit, filter.Offset).Order("code").Find(&employees).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

type EmployeeUpdate struct {
	DisplayName string
	ExternalID  *string
}

// UpdateEmployee sets the real identity of an employee and clears the
// provisional flag.
func (s *Store) UpdateEmployee(ctx context.Context, code string, update EmployeeUpdate) (*model.Employee, error) {
	var employee model.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&employee).Error; err != nil {
			return err
		}
		err := tx.Model(&model.Employee{}).Where("id = ?", employee.ID).Updates(map[string]interface{}{
			"display_name": update.DisplayName,
			"external_id":  update.ExternalID,
			"provisional":  false,
		}).Error
		if err != nil {
			return err
		}
		return tx.First(&employee, employee.ID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", code, err)
	}
	return &employee, nil
}

func paginate(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
