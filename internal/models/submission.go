package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission records one application-submission event for a grant.
// Rows are immutable after creation; a grant may accumulate several.
type Submission struct {
	ID          string                      `gorm:"column:id;primaryKey" json:"id"`
	GrantID     string                      `gorm:"column:grant_id;not null;index:idx_sub_grant" json:"grant_id"`
	Grant       *Grant                      `gorm:"foreignKey:GrantID" json:"-"`
	SubmittedAt time.Time                   `gorm:"column:submitted_at;not null" json:"submitted_at"`
	Notes       string                      `gorm:"column:notes;default:''" json:"notes"`
	SubmittedBy string                      `gorm:"column:submitted_by;default:''" json:"submitted_by"`
	Documents   datatypes.JSONSlice[string] `gorm:"column:documents" json:"documents"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
