package model

import (
	"time"

	"gorm.io/datatypes"
)

type Employee struct {
	ID          uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Code        string         `gorm:"column:code;size:32;not null;uniqueIndex:ux_employees_code" json:"code"`
	DisplayName string         `gorm:"column:display_name;size:255;not null" json:"displayName"`
	ExternalID  *string        `gorm:"column:external_id;size:64" json:"externalId"`
	Provisional bool           `gorm:"column:provisional;not null;default:false" json:"provisional"`
	Attributes  datatypes.JSON `gorm:"column:attributes" json:"attributes"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

// ProvisionAttributes is stored in Employee.Attributes for auto-created employees.
type ProvisionAttributes struct {
	SourceDevice string `json:"sourceDevice"`
	TerminalName string `json:"terminalName,omitempty"`
}
