package model

type Shift struct {
	ID              uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name            string `gorm:"column:name;size:32;not null;uniqueIndex:ux_shifts_name" json:"name"`
	StartTime       string `gorm:"column:start_time;size:8;not null" json:"startTime"`
	EndTime         string `gorm:"column:end_time;size:8;not null" json:"endTime"`
	OTStartTime     string `gorm:"column:ot_start_time;size:8;not null" json:"otStartTime"`
	CrossesMidnight bool   `gorm:"column:crosses_midnight;not null;default:false" json:"crossesMidnight"`
	BreakMinutes    int    `gorm:"column:break_minutes;not null;default:0" json:"breakMinutes"`
}

func (Shift) TableName() string {
	return "shifts"
}
