package core

import (
	"sort"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"gorm.io/datatypes"
)

// ScanGroup holds one employee's scans for one work-date, ordered by check time.
type ScanGroup struct {
	EmployeeCode string
	WorkDate     datatypes.Date
	Scans        []model.ScanEvent
}

// ShiftName is the classification of the group's earliest scan.
func (g *ScanGroup) ShiftName(loc *time.Location) string {
	if len(g.Scans) == 0 {
		return ShiftDay
	}
	return ClassifyShift(g.Scans[0].CheckTime.In(loc))
}

// GroupScans keys every scan by employee and work-date. Each scan's work-date
// comes from its own classification, never from its neighbours.
func GroupScans(scans []model.ScanEvent, loc *time.Location) []*ScanGroup {
	type groupKey struct {
		code string
		date string
	}

	keyed := utils.GroupBy(scans, func(s model.ScanEvent) groupKey {
		local := s.CheckTime.In(loc)
		return groupKey{code: s.EmployeeCode, date: utils.DateKey(ResolveWorkDate(local, ClassifyShift(local)))}
	})

	groups := make([]*ScanGroup, 0, len(keyed))
	for key, recs := range keyed {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].CheckTime.Before(recs[j].CheckTime)
		})
		workDate, _ := time.Parse(utils.DateLayout, key.date)
		groups = append(groups, &ScanGroup{
			EmployeeCode: key.code,
			WorkDate:     datatypes.Date(workDate),
			Scans:        recs,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].EmployeeCode != groups[j].EmployeeCode {
			return groups[i].EmployeeCode < groups[j].EmployeeCode
		}
		return time.Time(groups[i].WorkDate).Before(time.Time(groups[j].WorkDate))
	})
	return groups
}
