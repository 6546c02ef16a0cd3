package utils

import (
	"math"
	"strings"

	"photodesk/models"
)

// UnassignedBucket is the reserved key for photos without a project.
const UnassignedBucket = "__unassigned"

// ChecklistSummary is the derived completion state of a checklist.
type ChecklistSummary struct {
	Total    int  `json:"total_items"`
	Done     int  `json:"done_items"`
	Progress int  `json:"progress"`
	Finished bool `json:"is_finished"`
}

// SummarizeChecklist computes completion over a checklist's items. Items
// marked n/a count as done. An empty checklist is 0% and never finished.
func SummarizeChecklist(items []models.ChecklistItem) ChecklistSummary {
	summary := ChecklistSummary{Total: len(items)}
	for _, item := range items {
		if item.State == models.ItemDone || item.State == models.ItemNotApplicable {
			summary.Done++
		}
	}
	if summary.Total > 0 {
		summary.Progress = int(math.Round(float64(summary.Done) / float64(summary.Total) * 100))
		summary.Finished = summary.Done == summary.Total
	}
	return summary
}

// SummarizeUploadStatus builds a histogram of photos by normalized status:
// the first non-empty of upload_status and status, lowercased, else
// "unknown". Every photo lands in exactly one bucket.
func SummarizeUploadStatus(photos []models.Photo) map[string]int {
	summary := make(map[string]int)
	for _, photo := range photos {
		key := ""
		if photo.UploadStatus != nil {
			key = *photo.UploadStatus
		}
		if key == "" && photo.Status != nil {
			key = *photo.Status
		}
		if key == "" {
			key = "unknown"
		}
		summary[strings.ToLower(key)]++
	}
	return summary
}

// CountPhotosByProject partitions photos into per-project counts, with the
// reserved UnassignedBucket for photos that have no project.
func CountPhotosByProject(photos []models.Photo) map[string]int {
	counts := make(map[string]int)
	for _, photo := range photos {
		if photo.ProjectID == nil || *photo.ProjectID == "" {
			counts[UnassignedBucket]++
		} else {
			counts[*photo.ProjectID]++
		}
	}
	return counts
}
