package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the workspace role attached to a profile. It subsumes the legacy
// is_admin boolean: "elevated" access is derived, never stored.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStandard   Role = "standard"
	RoleRestricted Role = "restricted"
)

// ValidRole reports whether s is one of the four workspace roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStandard, RoleRestricted:
		return true
	}
	return false
}

// Organization scopes every other record in the system.
type Organization struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Profile is the organization-scoped identity of an authenticated user.
// The account itself (email, credentials) lives in the hosted auth service;
// UserID is the auth service's user id.
type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"org_id"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'standard'" json:"role"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Elevated reports whether the profile has organization-wide read/write.
func (p *Profile) Elevated() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}

// FullName joins the name parts, dropping empties.
func (p *Profile) FullName() string {
	name := ""
	if p.FirstName != nil {
		name = *p.FirstName
	}
	if p.LastName != nil && *p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *p.LastName
	}
	return name
}
