package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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

	require.NoError(t, db.AutoMigrate(&models.Profile{}))
	return db
}

func newGuardedApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", Protected(db), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": CurrentProfile(c).UserID})
	})
	app.Get("/elevated", Protected(db), RequireElevated(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func seedProfile(t *testing.T, db *gorm.DB, role models.Role, active bool) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:   uuid.NewString(),
		OrgID:    uuid.NewString(),
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func tokenFor(t *testing.T, profile *models.Profile) string {
	t.Helper()

	token, err := utils.GenerateSessionToken(profile.UserID, "caller@example.com")
	require.NoError(t, err)
	return token
}

func TestProtected(t *testing.T) {
	db := newTestDB(t)
	app := newGuardedApp(db)
	profile := seedProfile(t, db, models.RoleStandard, true)

	t.Run("bearer header admits the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, profile))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cookie fallback admits the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: tokenFor(t, profile)})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing credentials", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Token abc")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token without a profile row", func(t *testing.T) {
		orphan := &models.Profile{UserID: uuid.NewString()}
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, orphan))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("deactivated profile", func(t *testing.T) {
		inactive := seedProfile(t, db, models.RoleAdmin, false)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, inactive))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRequireElevated(t *testing.T) {
	db := newTestDB(t)
	app := newGuardedApp(db)

	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleManager, http.StatusOK},
		{models.RoleStandard, http.StatusForbidden},
		{models.RoleRestricted, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			profile := seedProfile(t, db, tt.role, true)
			req := httptest.NewRequest(http.MethodGet, "/elevated", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, profile))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
