package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"photodesk/config"
	"photodesk/models"
	"photodesk/utils"
)

func TestMain(m *testing.M) {
	config.AppConfig = config.Config{
		Environment: "test",
		JWTSecret:   "test-secret",
	}
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.Profile{},
		&models.Project{},
		&models.Photo{},
		&models.Checklist{},
		&models.ChecklistItem{},
		&models.Report{},
		&models.Group{},
		&models.GroupMember{},
		&models.Label{},
		&models.Page{},
		&models.ProjectDocument{},
		&models.ChecklistTemplate{},
	))
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// asProfile stands in for the session middleware, injecting an already
// resolved profile.
func asProfile(profile *models.Profile) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("profile", profile)
		c.Locals("userID", profile.UserID)
		c.Locals("email", "caller@example.com")
		return c.Next()
	}
}

func seedProfile(t *testing.T, db *gorm.DB, orgID string, role models.Role) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:   uuid.NewString(),
		OrgID:    orgID,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedProject(t *testing.T, db *gorm.DB, orgID, createdBy, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		OrgID:     orgID,
		CreatedBy: createdBy,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedPhoto(t *testing.T, db *gorm.DB, orgID, createdBy string, projectID *string) *models.Photo {
	t.Helper()

	photo := &models.Photo{
		OrgID:     orgID,
		CreatedBy: createdBy,
		ProjectID: projectID,
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func unconfiguredStorage() *utils.StorageClient {
	return utils.NewStorageClient("", "photos", "", quietLogger())
}
