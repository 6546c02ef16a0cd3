package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON column so the same
// model works against Postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported tags column type %T", value)
}

// Photo is an uploaded photo. A photo with an empty ProjectID is unassigned.
// SignedURL is derived per request from ObjectKey and never persisted.
type Photo struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         *string    `json:"name"`
	URL          *string    `json:"url"`
	ObjectKey    *string    `json:"object_key"`
	OrgID        string     `gorm:"type:uuid;not null;index" json:"org_id"`
	ProjectID    *string    `gorm:"type:uuid;index" json:"project_id"`
	CreatedBy    string     `gorm:"type:uuid;not null;index" json:"created_by"`
	Tags         StringList `gorm:"type:text" json:"tags"`
	Notes        *string    `json:"notes"`
	UploadStatus *string    `json:"upload_status"`
	Status       *string    `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`

	SignedURL *string `gorm:"-" json:"signed_url"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
