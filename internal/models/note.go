package models

import "time"

// GrantNote is an append-only annotation on a grant. Never updated or deleted.
type GrantNote struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	GrantID   string    `gorm:"column:grant_id;not null;index:idx_note_grant" json:"grant_id"`
	Grant     *Grant    `gorm:"foreignKey:GrantID" json:"-"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	Author    string    `gorm:"column:author;default:''" json:"author"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (GrantNote) TableName() string {
	return "grant_notes"
}
