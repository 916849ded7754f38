package core

import (
	"fmt"
	"sort"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"gorm.io/datatypes"
)

const (
	otBlockMinutes = 30
	breakOTGrace   = 30 * time.Minute
)

// Only Day shift earns overtime under the current rules; Evening and Night
// always record zero OT minutes.
var otEligibleShifts = map[string]bool{
	ShiftDay: true,
}

// Rules are the site-wide switches applied when aggregating a work record.
type Rules struct {
	SkipLunchBreak   bool
	SkipBreakOTGrace bool
}

// Aggregate builds the work record for one employee and work-date. The
// earliest scan is the clock-in and the latest the clock-out; anything in
// between is ignored.
func Aggregate(code string, workDate datatypes.Date, scans []model.ScanEvent, shift model.Shift, rules Rules, loc *time.Location) (model.WorkRecord, error) {
	record := model.WorkRecord{
		EmployeeCode: code,
		WorkDate:     workDate,
		ShiftName:    shift.Name,
		Status:       model.WorkRecordIncomplete,
	}
	if len(scans) == 0 {
		return record, nil
	}

	sorted := make([]model.ScanEvent, len(scans))
	copy(sorted, scans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckTime.Before(sorted[j].CheckTime)
	})

	first := sorted[0]
	last := sorted[len(sorted)-1]
	record.ScanInID = &first.ID
	record.ScanInTime = &first.CheckTime

	if !last.CheckTime.After(first.CheckTime) {
		return record, nil
	}

	record.ScanOutID = &last.ID
	record.ScanOutTime = &last.CheckTime
	record.Status = model.WorkRecordComplete
	record.WorkingMinutes = CalculateWorkingMinutes(first.CheckTime, last.CheckTime, shift.BreakMinutes, rules.SkipLunchBreak)

	if otEligibleShifts[shift.Name] {
		ot, err := CalculateOTMinutes(last.CheckTime.In(loc), shift, rules.SkipBreakOTGrace)
		if err != nil {
			return record, fmt.Errorf("shift %s: %w", shift.Name, err)
		}
		record.OTMinutes = ot
	}

	return record, nil
}

// CalculateWorkingMinutes returns whole minutes between in and out, less the
// break unless it is skipped. Never negative.
func CalculateWorkingMinutes(in, out time.Time, breakMinutes int, skipBreak bool) int {
	minutes := int(out.Sub(in) / time.Minute)
	if !skipBreak {
		minutes -= breakMinutes
	}
	return max(0, minutes)
}

// CalculateOTMinutes measures overtime from the shift's OT start on the
// clock-out's calendar date, counted in completed 30 minute blocks.
// out must already be in the site location.
func CalculateOTMinutes(out time.Time, shift model.Shift, skipGrace bool) (int, error) {
	otStart, err := utils.ParseTimeOnDate(out, shift.OTStartTime)
	if err != nil {
		return 0, fmt.Errorf("ot start: %w", err)
	}

	// a clock-out before midnight on an overnight shift runs towards the
	// next morning's OT start
	if shift.CrossesMidnight && out.Hour() >= 12 {
		otStart = otStart.AddDate(0, 0, 1)
	}

	if skipGrace {
		otStart = otStart.Add(-breakOTGrace)
	}

	diff := out.Sub(otStart)
	if diff <= 0 {
		return 0, nil
	}

	minutes := int(diff / time.Minute)
	return minutes / otBlockMinutes * otBlockMinutes, nil
}
