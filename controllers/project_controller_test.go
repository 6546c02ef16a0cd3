package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photodesk/models"
)

func newProjectApp(db *gorm.DB, profile *models.Profile) *fiber.App {
	pc := NewProjectController(db, quietLogger(), unconfiguredStorage())
	app := fiber.New()
	app.Use(asProfile(profile))
	app.Get("/admin/projects", pc.List)
	app.Get("/admin/projects/:id", pc.Detail)
	app.Post("/api/admin/projects", pc.Create)
	return app
}

func TestProjectListScoping(t *testing.T) {
	db := newTestDB(t)
	admin := seedProfile(t, db, "org-1", models.RoleAdmin)
	standard := seedProfile(t, db, "org-1", models.RoleStandard)
	outsider := seedProfile(t, db, "org-2", models.RoleAdmin)

	seedProject(t, db, "org-1", admin.UserID, "Admin project")
	seedProject(t, db, "org-1", standard.UserID, "Standard project")
	seedProject(t, db, "org-2", outsider.UserID, "Other org project")

	t.Run("admin sees every project in the org", func(t *testing.T) {
		app := newProjectApp(db, admin)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/projects", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["projects"], 2)
		assert.Equal(t, true, data["can_manage_org"])
	})

	t.Run("standard sees only own projects", func(t *testing.T) {
		app := newProjectApp(db, standard)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/projects", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]interface{})
		projects := data["projects"].([]interface{})
		require.Len(t, projects, 1)
		assert.Equal(t, "Standard project", projects[0].(map[string]interface{})["name"])
		assert.Equal(t, false, data["can_manage_org"])
	})
}

func TestProjectDetail(t *testing.T) {
	db := newTestDB(t)
	admin := seedProfile(t, db, "org-1", models.RoleAdmin)
	standard := seedProfile(t, db, "org-1", models.RoleStandard)
	project := seedProject(t, db, "org-1", admin.UserID, "Site A")

	checklist := models.Checklist{
		Name:      "Handover",
		ProjectID: project.ID,
		OrgID:     "org-1",
		CreatedBy: admin.UserID,
	}
	require.NoError(t, db.Create(&checklist).Error)
	require.NoError(t, db.Create(&models.ChecklistItem{
		ChecklistID: checklist.ID, Title: "Keys", State: models.ItemDone,
	}).Error)
	require.NoError(t, db.Create(&models.ChecklistItem{
		ChecklistID: checklist.ID, Title: "Meters", State: models.ItemTodo,
	}).Error)

	t.Run("returns checklists with summaries", func(t *testing.T) {
		app := newProjectApp(db, admin)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/projects/"+project.ID, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]interface{})
		checklists := data["checklists"].([]interface{})
		require.Len(t, checklists, 1)
		summary := checklists[0].(map[string]interface{})["summary"].(map[string]interface{})
		assert.Equal(t, float64(50), summary["progress"])
		assert.Equal(t, false, summary["is_finished"])
	})

	t.Run("hidden from non-creators without elevation", func(t *testing.T) {
		app := newProjectApp(db, standard)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/projects/"+project.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestProjectCreate(t *testing.T) {
	db := newTestDB(t)
	admin := seedProfile(t, db, "org-1", models.RoleAdmin)
	app := newProjectApp(db, admin)

	t.Run("creates and returns the new id", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/admin/projects", fiber.Map{
			"name": "  New Build  ",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])

		var project models.Project
		require.NoError(t, db.Where("id = ?", body["projectId"]).First(&project).Error)
		assert.Equal(t, "New Build", project.Name)
		assert.Equal(t, "org-1", project.OrgID)
		assert.Equal(t, admin.UserID, project.CreatedBy)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/admin/projects", fiber.Map{
			"name": "   ",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Project{}).Where("name = ?", "").Count(&count).Error)
		assert.Zero(t, count, "no row inserted for a rejected request")
	})
}
