package models

import "time"

// ReportStatus lifecycle: draft -> published -> archived.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportPublished ReportStatus = "published"
	ReportArchived  ReportStatus = "archived"
)

// Report is a project report. PDF rendering is not implemented; the object
// key stays null until a renderer exists.
type Report struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	ProjectID    string       `gorm:"type:uuid;not null;index" json:"project_id"`
	OrgID        string       `gorm:"type:uuid;not null;index" json:"org_id"`
	CreatedBy    string       `gorm:"type:uuid;not null" json:"created_by"`
	Status       ReportStatus `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	PDFObjectKey *string      `json:"pdf_object_key"`
	CreatedAt    time.Time    `json:"created_at"`
	PublishedAt  *time.Time   `json:"published_at"`
}
