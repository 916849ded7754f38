package ingest

import (
	"time"

	"axiapac.com/timeclock/utils"
)

// Cutoff returns the earliest check time accepted for a device: the day
// before the cursor's local day, never later than yesterday and never before
// the epoch floor. Without a cursor the floor is used.
func Cutoff(now time.Time, cursor *time.Time, floor time.Time, loc *time.Location) time.Time {
	if cursor == nil {
		return floor
	}

	yesterday := utils.StartOfDay(now.In(loc)).AddDate(0, 0, -1)
	base := utils.StartOfDay(cursor.In(loc)).AddDate(0, 0, -1)
	if base.After(yesterday) {
		base = yesterday
	}
	if base.Before(floor) {
		base = floor
	}
	return base
}
