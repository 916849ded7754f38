package core

import (
	"time"

	"axiapac.com/timeclock/utils"
	"gorm.io/datatypes"
)

const (
	ShiftDay     = "Day"
	ShiftEvening = "Evening"
	ShiftNight   = "Night"
)

// overnightTailHour is the local hour before which an Evening/Night scan is
// attributed to the previous work-date.
const overnightTailHour = 8

type hourBand struct {
	from, to int // inclusive from, exclusive to
	shift    string
}

// Classification bands are fixed time-of-day windows. They do not read
// Shift.StartTime/EndTime, which only drive the OT window.
var shiftBands = []hourBand{
	{from: 6, to: 10, shift: ShiftDay},
	{from: 14, to: 18, shift: ShiftEvening},
	{from: 18, to: 23, shift: ShiftNight},
}

// ClassifyShift maps a scan to a shift name using the local hour of t.
// Hours outside every band fall back to Day.
func ClassifyShift(t time.Time) string {
	hour := t.Hour()
	for _, band := range shiftBands {
		if hour >= band.from && hour < band.to {
			return band.shift
		}
	}
	return ShiftDay
}

// ResolveWorkDate returns the work-date a scan is attributed to. Evening and
// Night scans before 08:00 belong to the shift that started the previous day.
func ResolveWorkDate(t time.Time, shiftName string) datatypes.Date {
	if (shiftName == ShiftEvening || shiftName == ShiftNight) && t.Hour() < overnightTailHour {
		return utils.DateOf(t.AddDate(0, 0, -1))
	}
	return utils.DateOf(t)
}
