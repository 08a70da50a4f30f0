package models

import (
	"time"

	"gorm.io/datatypes"
)

// Grant is a funding opportunity tracked from identification through closure.
// List-valued fields are stored as JSON text and hydrate to ordered slices.
type Grant struct {
	ID             string                      `gorm:"column:id;primaryKey" json:"id"`
	Title          string                      `gorm:"column:title;not null" json:"title"`
	Funder         string                      `gorm:"column:funder;not null;index:idx_grant_funder" json:"funder"`
	Amount         float64                     `gorm:"column:amount;type:decimal(18,2);not null;default:0" json:"amount"`
	Type           GrantType                   `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Purpose        string                      `gorm:"column:purpose;default:''" json:"purpose"`
	Deadline       *time.Time                  `gorm:"column:deadline" json:"deadline"`
	Status         GrantStatus                 `gorm:"column:status;type:varchar(20);default:'identified';index:idx_grant_status" json:"status"`
	Requirements   datatypes.JSONSlice[string] `gorm:"column:requirements" json:"requirements"`
	ReportingDates datatypes.JSONSlice[string] `gorm:"column:reporting_dates" json:"reporting_dates"`
	Contacts       datatypes.JSONSlice[string] `gorm:"column:contacts" json:"contacts"`
	AwardAmount    *float64                    `gorm:"column:award_amount;type:decimal(18,2)" json:"award_amount"`
	Notes          string                      `gorm:"column:notes;default:''" json:"notes"`
	AssignedTo     string                      `gorm:"column:assigned_to;default:''" json:"assigned_to"`
	CreatedAt      time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (Grant) TableName() string {
	return "grants"
}
