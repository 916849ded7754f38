package model

import (
	"time"

	"gorm.io/datatypes"
)

type MealCredit struct {
	ID              uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EmployeeID      uint           `gorm:"column:employee_id;not null;uniqueIndex:ux_meal_credits_day,priority:1" json:"employeeId"`
	Date            datatypes.Date `gorm:"column:date;not null;uniqueIndex:ux_meal_credits_day,priority:2" json:"date"`
	LunchAvailable  bool           `gorm:"column:lunch_available;not null;default:false" json:"lunchAvailable"`
	OTMealAvailable bool           `gorm:"column:ot_meal_available;not null;default:false" json:"otMealAvailable"`
	LunchUsed       bool           `gorm:"column:lunch_used;not null;default:false" json:"lunchUsed"`
	OTMealUsed      bool           `gorm:"column:ot_meal_used;not null;default:false" json:"otMealUsed"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

func (MealCredit) TableName() string {
	return "meal_credits"
}
