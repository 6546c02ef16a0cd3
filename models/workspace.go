package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label is a project-scoped tag definition.
type Label struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OrgID       string    `gorm:"type:uuid;not null;index" json:"org_id"`
	ProjectID   *string   `gorm:"type:uuid;index" json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Page is an album page grouping photos inside a project.
type Page struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OrgID       string    `gorm:"type:uuid;not null;index" json:"org_id"`
	ProjectID   *string   `gorm:"type:uuid;index" json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectDocument is an uploaded document attached to a project.
type ProjectDocument struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ObjectKey *string   `json:"object_key"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"org_id"`
	ProjectID string    `gorm:"type:uuid;not null;index" json:"project_id"`
	CreatedBy string    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *ProjectDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// ChecklistTemplate is an org-scoped template new checklists can start from.
// Built-in templates have an empty OrgID and are visible to every workspace.
type ChecklistTemplate struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	OrgID       *string    `gorm:"type:uuid;index" json:"org_id"`
	ItemTitles  StringList `gorm:"type:text" json:"item_titles"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (t *ChecklistTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
