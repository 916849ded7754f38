package store

import (
	"context"
	"fmt"

	"axiapac.com/timeclock/model"
)

func (s *Store) ListShifts(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	if err := s.db.WithContext(ctx).Order("id").Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}
