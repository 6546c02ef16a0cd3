package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photodesk/models"
	"photodesk/utils"
)

// authStub fakes the auth service's password grant: the fixed password
// "correct-horse" signs in as userID, anything else is rejected.
func authStub(t *testing.T, userID string) *utils.IdentityClient {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "correct-horse" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"user": utils.AuthUser{ID: userID, Email: creds["email"]},
		})
	}))
	t.Cleanup(server.Close)

	return utils.NewIdentityClient(server.URL, "anon-key", "", quietLogger())
}

func newAuthApp(db *gorm.DB, identity *utils.IdentityClient) *fiber.App {
	ac := NewAuthController(db, quietLogger(), identity)
	app := fiber.New()
	app.Post("/api/auth/login", ac.Login)
	app.Post("/api/auth/logout", ac.Logout)
	return app
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "access_token" {
			return cookie
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	admin := seedProfile(t, db, "org-1", models.RoleAdmin)
	standard := seedProfile(t, db, "org-1", models.RoleStandard)

	t.Run("elevated profile gets a session cookie", func(t *testing.T) {
		app := newAuthApp(db, authStub(t, admin.UserID))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "admin@example.com",
			"password": "correct-horse",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		claims, err := utils.ParseSessionToken(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, admin.UserID, claims.UserID)
	})

	t.Run("wrong password is rejected without detail", func(t *testing.T) {
		app := newAuthApp(db, authStub(t, admin.UserID))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "admin@example.com",
			"password": "wrong",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Invalid email or password", body["error"])
	})

	t.Run("valid credentials without elevation are unauthorized", func(t *testing.T) {
		app := newAuthApp(db, authStub(t, standard.UserID))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "standard@example.com",
			"password": "correct-horse",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Nil(t, sessionCookie(resp))
	})

	t.Run("malformed email fails validation", func(t *testing.T) {
		app := newAuthApp(db, authStub(t, admin.UserID))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "not-an-email",
			"password": "correct-horse",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)
	app := newAuthApp(db, authStub(t, "unused"))

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/logout", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
