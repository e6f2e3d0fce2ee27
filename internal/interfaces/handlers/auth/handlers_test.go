package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	authsvc "easybazar-backend/internal/application/auth"
	"easybazar-backend/internal/middleware"
	"easybazar-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) (*fiber.App, *Handlers, *redis.Client) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Listing{}, &models.ListingImage{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{
		Service: &authsvc.Service{DB: db},
		Rdb:     rdb,
		Config:  middleware.SessionConfig{},
	}

	app := fiber.New()
	app.Use(middleware.SessionWithClient(rdb))
	app.Post("/api/auth/sign-up", h.SignUp)
	app.Post("/api/auth/sign-in", h.SignIn)
	app.Post("/api/auth/sign-out", h.SignOut)
	app.Get("/api/auth/user", h.Me)
	app.Post("/api/auth/change-password", middleware.RequireAuth(), h.ChangePassword)
	app.Delete("/api/auth/delete-account", middleware.RequireAuth(), h.DeleteAccount)
	return app, h, rdb
}

func postJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, cookie string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", middleware.SessionCookieName+"="+cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func signUpPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":    "anna@example.com",
		"password": "password123",
		"profile":  map[string]string{"username": "anna_k", "fullName": "Anna Kowalska"},
	}
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func TestSignUp_Success(t *testing.T) {
	app, _, _ := setupAuthApp(t)

	resp := postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["userId"])
}

func TestSignUp_ConflictsAre409(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	resp := postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// same username, different email
	dup := signUpPayload()
	dup["email"] = "other@example.com"
	resp = postJSON(t, app, "POST", "/api/auth/sign-up", dup, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// same email, different username
	dup = signUpPayload()
	dup["profile"] = map[string]string{"username": "someone_else", "fullName": "Other"}
	resp = postJSON(t, app, "POST", "/api/auth/sign-up", dup, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSignIn_SetsSessionCookie(t *testing.T) {
	app, _, rdb := setupAuthApp(t)
	postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")

	resp := postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "password123"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	sid := sessionCookie(t, resp)
	require.NotEmpty(t, sid)

	// session landed in Redis with the user attached
	raw, err := rdb.Get(context.Background(), middleware.SessionRedisPrefix+sid).Bytes()
	require.NoError(t, err)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &data))
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user["email"])
	assert.Equal(t, "anna_k", user["username"])
}

func TestSignIn_BadCredentials(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")

	resp := postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "wrong"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "ghost@example.com", "password": "password123"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMe_WithSession(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")
	resp := postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "password123"}, "")
	sid := sessionCookie(t, resp)

	resp = postJSON(t, app, "GET", "/api/auth/user", nil, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user["email"])
}

func TestMe_Anonymous(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	resp := postJSON(t, app, "GET", "/api/auth/user", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignOut_DropsSession(t *testing.T) {
	app, _, rdb := setupAuthApp(t)
	postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")
	resp := postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "password123"}, "")
	sid := sessionCookie(t, resp)

	resp = postJSON(t, app, "POST", "/api/auth/sign-out", nil, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	err := rdb.Get(context.Background(), middleware.SessionRedisPrefix+sid).Err()
	assert.ErrorIs(t, err, redis.Nil)

	// session gone, the id no longer authenticates
	resp = postJSON(t, app, "GET", "/api/auth/user", nil, sid)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChangePassword_Flow(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")
	resp := postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "password123"}, "")
	sid := sessionCookie(t, resp)

	resp = postJSON(t, app, "POST", "/api/auth/change-password", map[string]string{"currentPassword": "wrong", "newPassword": "new-password-1"}, sid)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "POST", "/api/auth/change-password", map[string]string{"currentPassword": "password123", "newPassword": "new-password-1"}, sid)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "new-password-1"}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteAccount_RemovesUserAndSession(t *testing.T) {
	app, h, _ := setupAuthApp(t)
	postJSON(t, app, "POST", "/api/auth/sign-up", signUpPayload(), "")
	resp := postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "password123"}, "")
	sid := sessionCookie(t, resp)

	resp = postJSON(t, app, "DELETE", "/api/auth/delete-account", nil, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, h.Service.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	resp = postJSON(t, app, "POST", "/api/auth/sign-in", map[string]string{"email": "anna@example.com", "password": "password123"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
