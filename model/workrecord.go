package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	WorkRecordComplete   = "complete"
	WorkRecordIncomplete = "incomplete"
)

type WorkRecord struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EmployeeCode   string         `gorm:"column:employee_code;size:32;not null;uniqueIndex:ux_work_records_day,priority:1" json:"employeeCode"`
	WorkDate       datatypes.Date `gorm:"column:work_date;not null;uniqueIndex:ux_work_records_day,priority:2" json:"workDate"`
	ShiftName      string         `gorm:"column:shift_name;size:32;not null" json:"shiftName"`
	ScanInID       *string        `gorm:"column:scan_in_id;type:char(36)" json:"scanInId"`
	ScanOutID      *string        `gorm:"column:scan_out_id;type:char(36)" json:"scanOutId"`
	ScanInTime     *time.Time     `gorm:"column:scan_in_time" json:"scanInTime"`
	ScanOutTime    *time.Time     `gorm:"column:scan_out_time" json:"scanOutTime"`
	WorkingMinutes int            `gorm:"column:working_minutes;not null;default:0" json:"workingMinutes"`
	OTMinutes      int            `gorm:"column:ot_minutes;not null;default:0" json:"otMinutes"`
	Status         string         `gorm:"column:status;size:16;not null" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (WorkRecord) TableName() string {
	return "work_records"
}
