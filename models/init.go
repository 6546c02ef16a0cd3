package models

import "gorm.io/gorm"

// SeedChecklistTemplates installs the built-in templates the templates
// catalog starts with. Org-scoped templates are created by admins later.
func SeedChecklistTemplates(db *gorm.DB) error {
	builtins := []ChecklistTemplate{
		{
			Name:        "Site Walkthrough",
			Description: "Baseline walkthrough documentation for a new project",
			ItemTitles: StringList{
				"Exterior overview photos",
				"Entry points documented",
				"Utility locations photographed",
				"Known damage captured",
			},
		},
		{
			Name:        "Pre-Handover",
			Description: "Final documentation pass before handover",
			ItemTitles: StringList{
				"All rooms photographed",
				"Punch list items closed",
				"Final report drafted",
			},
		},
		{
			Name:        "Incident Record",
			Description: "Minimal evidence set for an incident report",
			ItemTitles: StringList{
				"Wide shot of the area",
				"Close-up of the incident",
				"Surrounding context",
			},
		},
	}

	for _, tpl := range builtins {
		var existing ChecklistTemplate
		err := db.Where("name = ? AND org_id IS NULL", tpl.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&tpl).Error; err != nil {
			return err
		}
	}
	return nil
}
