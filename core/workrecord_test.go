package core

import (
	"testing"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOTMinutes(t *testing.T) {
	tests := []struct {
		name      string
		out       time.Time
		skipGrace bool
		expected  int
	}{
		{"before ot start", at(26, 17, 0), false, 0},
		{"partial block", at(26, 17, 45), false, 0},
		{"one block", at(26, 18, 0), false, 30},
		{"one block plus", at(26, 18, 20), false, 30},
		{"two blocks", at(26, 18, 30), false, 60},
		{"three blocks", at(26, 19, 0), false, 90},
		{"grace skipped partial", at(26, 17, 15), true, 0},
		{"grace skipped one block", at(26, 17, 30), true, 30},
		{"grace skipped two blocks", at(26, 18, 0), true, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateOTMinutes(tt.out, dayShift, tt.skipGrace)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculateOTMinutes_OvernightShift(t *testing.T) {
	// clock-out after midnight measures against the same morning's OT start
	got, err := CalculateOTMinutes(at(27, 6, 30), nightShift, false)
	require.NoError(t, err)
	assert.Equal(t, 60, got)

	// clock-out in the evening has not reached the next morning's OT start
	got, err = CalculateOTMinutes(at(26, 23, 0), nightShift, false)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestCalculateOTMinutes_InvalidClock(t *testing.T) {
	broken := dayShift
	broken.OTStartTime = "half past five"

	_, err := CalculateOTMinutes(at(26, 19, 0), broken, false)
	assert.Error(t, err)
}

func TestCalculateWorkingMinutes(t *testing.T) {
	tests := []struct {
		name      string
		in, out   time.Time
		breakMins int
		skip      bool
		expected  int
	}{
		{"standard day", at(26, 8, 0), at(26, 17, 0), 60, false, 480},
		{"hour over", at(26, 8, 0), at(26, 18, 0), 60, false, 540},
		{"break skipped", at(26, 8, 0), at(26, 17, 0), 60, true, 540},
		{"shorter than break", at(26, 8, 0), at(26, 8, 30), 60, false, 0},
		{"partial minute dropped", at(26, 8, 0), at(26, 8, 0).Add(90 * time.Second), 0, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateWorkingMinutes(tt.in, tt.out, tt.breakMins, tt.skip))
		})
	}
}

func TestAggregate(t *testing.T) {
	workDate := utils.DateOf(at(26, 0, 0))

	t.Run("no scans", func(t *testing.T) {
		rec, err := Aggregate("00123", workDate, nil, dayShift, Rules{}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, model.WorkRecordIncomplete, rec.Status)
		assert.Nil(t, rec.ScanInTime)
		assert.Nil(t, rec.ScanOutTime)
		assert.Zero(t, rec.WorkingMinutes)
	})

	t.Run("single scan", func(t *testing.T) {
		scans := []model.ScanEvent{scan("a", "00123", at(26, 8, 5))}
		rec, err := Aggregate("00123", workDate, scans, dayShift, Rules{}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, model.WorkRecordIncomplete, rec.Status)
		require.NotNil(t, rec.ScanInTime)
		assert.True(t, rec.ScanInTime.Equal(at(26, 8, 5)))
		assert.Nil(t, rec.ScanOutTime)
		assert.Zero(t, rec.WorkingMinutes)
		assert.Zero(t, rec.OTMinutes)
	})

	t.Run("day with overtime", func(t *testing.T) {
		scans := []model.ScanEvent{
			scan("b", "00123", at(26, 19, 0)),
			scan("m", "00123", at(26, 12, 0)),
			scan("a", "00123", at(26, 8, 5)),
		}
		rec, err := Aggregate("00123", workDate, scans, dayShift, Rules{}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, model.WorkRecordComplete, rec.Status)
		assert.Equal(t, 595, rec.WorkingMinutes)
		assert.Equal(t, 90, rec.OTMinutes)
		assert.Equal(t, "a", *rec.ScanInID)
		assert.Equal(t, "b", *rec.ScanOutID)
		assert.Equal(t, "Day", rec.ShiftName)
	})

	t.Run("identical timestamps stay incomplete", func(t *testing.T) {
		scans := []model.ScanEvent{
			scan("a", "00123", at(26, 8, 5)),
			scan("b", "00123", at(26, 8, 5)),
		}
		rec, err := Aggregate("00123", workDate, scans, dayShift, Rules{}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, model.WorkRecordIncomplete, rec.Status)
		assert.Nil(t, rec.ScanOutTime)
	})

	t.Run("evening shift earns no overtime", func(t *testing.T) {
		scans := []model.ScanEvent{
			scan("a", "00200", at(26, 15, 0)),
			scan("b", "00200", at(26, 23, 59)),
		}
		rec, err := Aggregate("00200", workDate, scans, eveningShift, Rules{}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, model.WorkRecordComplete, rec.Status)
		assert.Equal(t, 479, rec.WorkingMinutes)
		assert.Zero(t, rec.OTMinutes)
	})

	t.Run("rules applied", func(t *testing.T) {
		scans := []model.ScanEvent{
			scan("a", "00123", at(26, 8, 0)),
			scan("b", "00123", at(26, 18, 0)),
		}
		rec, err := Aggregate("00123", workDate, scans, dayShift, Rules{SkipLunchBreak: true, SkipBreakOTGrace: true}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, 600, rec.WorkingMinutes)
		assert.Equal(t, 60, rec.OTMinutes)
	})

	t.Run("deterministic", func(t *testing.T) {
		scans := []model.ScanEvent{
			scan("a", "00123", at(26, 8, 5)),
			scan("b", "00123", at(26, 19, 0)),
		}
		first, err := Aggregate("00123", workDate, scans, dayShift, Rules{}, bangkok)
		require.NoError(t, err)
		second, err := Aggregate("00123", workDate, scans, dayShift, Rules{}, bangkok)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
