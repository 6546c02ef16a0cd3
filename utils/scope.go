package utils

import (
	"gorm.io/gorm"

	"photodesk/models"
)

// Scope is the row-level access filter for a caller: always the caller's
// organization, plus a created_by restriction for non-elevated callers.
// Every read of projects, photos and checklists goes through one of these;
// the filter is never re-derived at a call site.
type Scope struct {
	OrgID string
	// CreatedBy is empty for elevated callers (no ownership restriction).
	CreatedBy string
}

// ScopeFor builds the access scope for a profile.
func ScopeFor(profile *models.Profile) Scope {
	s := Scope{OrgID: profile.OrgID}
	if !profile.Elevated() {
		s.CreatedBy = profile.UserID
	}
	return s
}

// Apply is a gorm scope adding the filter predicates to a query.
func (s Scope) Apply(tx *gorm.DB) *gorm.DB {
	tx = tx.Where("org_id = ?", s.OrgID)
	if s.CreatedBy != "" {
		tx = tx.Where("created_by = ?", s.CreatedBy)
	}
	return tx
}

// Matches is the same predicate in pure form, for rows already in memory.
func (s Scope) Matches(orgID, createdBy string) bool {
	if orgID != s.OrgID {
		return false
	}
	if s.CreatedBy != "" && createdBy != s.CreatedBy {
		return false
	}
	return true
}
