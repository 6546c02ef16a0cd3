package models

import "time"

// Project is a photo-documentation project. IDs are allocated in the service
// before insert so write responses can return them immediately.
type Project struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"org_id"`
	CreatedBy string    `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Photos     []Photo     `gorm:"foreignKey:ProjectID" json:"photos,omitempty"`
	Checklists []Checklist `gorm:"foreignKey:ProjectID" json:"checklists,omitempty"`
	Reports    []Report    `gorm:"foreignKey:ProjectID" json:"reports,omitempty"`
}
