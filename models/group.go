package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group organizes teammates for project access and photo review.
type Group struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"org_id"`
	CreatedBy string    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GroupMember joins a profile to a group.
type GroupMember struct {
	GroupID   string    `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Profile Profile `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
}
