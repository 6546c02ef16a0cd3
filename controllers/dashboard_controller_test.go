package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photodesk/models"
	"photodesk/utils"
)

func TestDashboardOverview(t *testing.T) {
	db := newTestDB(t)
	admin := seedProfile(t, db, "org-1", models.RoleAdmin)
	outsider := seedProfile(t, db, "org-2", models.RoleAdmin)

	project := seedProject(t, db, "org-1", admin.UserID, "Site A")

	uploaded := seedPhoto(t, db, "org-1", admin.UserID, &project.ID)
	require.NoError(t, db.Model(uploaded).Update("upload_status", "Uploaded").Error)
	seedPhoto(t, db, "org-1", admin.UserID, nil)
	seedPhoto(t, db, "org-2", outsider.UserID, nil)

	seedChecklist(t, db, "org-1", admin.UserID, project.ID, []models.ItemState{
		models.ItemDone, models.ItemTodo,
	})
	seedChecklist(t, db, "org-1", admin.UserID, project.ID, []models.ItemState{
		models.ItemDone, models.ItemNotApplicable,
	})

	dc := NewDashboardController(db, quietLogger())
	app := fiber.New()
	app.Use(asProfile(admin))
	app.Get("/admin/dashboard", dc.Overview)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})

	assert.Equal(t, float64(1), stats["total_projects"])
	assert.Equal(t, float64(2), stats["total_photos"], "other orgs' photos are excluded")
	assert.Equal(t, float64(1), stats["unassigned_photos"])
	assert.Equal(t, float64(1), stats["open_checklists"])
	assert.Equal(t, float64(1), stats["closed_checklists"])

	statusSummary := stats["status_summary"].(map[string]interface{})
	assert.Equal(t, float64(1), statusSummary["uploaded"])
	assert.Equal(t, float64(1), statusSummary["unknown"])

	counts := data["photo_count_by_project"].(map[string]interface{})
	assert.Equal(t, float64(1), counts[utils.UnassignedBucket])
	assert.Equal(t, float64(1), counts[project.ID])
}
