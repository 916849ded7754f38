package model

import "time"

// ScanEvent is one clock-in/out occurrence reported by a terminal.
// Rows are immutable once written; (EmployeeCode, CheckTime, DeviceID) identifies a scan.
type ScanEvent struct {
	ID           string    `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	EmployeeCode string    `gorm:"column:employee_code;size:32;not null;uniqueIndex:ux_scan_events_identity,priority:1" json:"employeeCode"`
	CheckTime    time.Time `gorm:"column:check_time;not null;uniqueIndex:ux_scan_events_identity,priority:2;index:ix_scan_events_check_time" json:"checkTime"`
	DeviceID     string    `gorm:"column:device_id;size:64;not null;uniqueIndex:ux_scan_events_identity,priority:3" json:"deviceId"`
	RawState     *int      `gorm:"column:raw_state" json:"rawState"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
