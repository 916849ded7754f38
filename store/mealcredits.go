package store

import (
	"context"
	"fmt"

	"axiapac.com/timeclock/model"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// GrantMealCredits upserts credits on (employee_id, date). Existing rows only
// ever gain availability; the used flags are left alone.
func (s *Store) GrantMealCredits(ctx context.Context, credits []model.MealCredit, grantOT bool) error {
	if len(credits) == 0 {
		return nil
	}

	updates := map[string]interface{}{
		"lunch_available": true,
		"updated_at":      s.db.NowFunc(),
	}
	if grantOT {
		updates["ot_meal_available"] = true
	}

	err := s.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(&credits).Error
	if err != nil {
		return fmt.Errorf("failed to grant meal credits: %w", err)
	}
	return nil
}

func (s *Store) ListMealCredits(ctx context.Context, date datatypes.Date) ([]model.MealCredit, error) {
	var credits []model.MealCredit
	err := s.db.WithContext(ctx).
		Preload("Employee").
		Where("date = ?", date).
		Order("employee_id").
		Find(&credits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meal credits: %w", err)
	}
	return credits, nil
}
