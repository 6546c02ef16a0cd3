package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemState is the completion state of a single checklist item.
// "n/a" counts as done for progress purposes.
type ItemState string

const (
	ItemTodo          ItemState = "todo"
	ItemDoing         ItemState = "doing"
	ItemDone          ItemState = "done"
	ItemNotApplicable ItemState = "n/a"
)

type Checklist struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ProjectID string    `gorm:"type:uuid;not null;index" json:"project_id"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"org_id"`
	CreatedBy string    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Items []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

func (c *Checklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ChecklistItem struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChecklistID string    `gorm:"type:uuid;not null;index" json:"checklist_id"`
	Title       string    `gorm:"not null" json:"title"`
	State       ItemState `gorm:"type:varchar(8);not null;default:'todo'" json:"state"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
