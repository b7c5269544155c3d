package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogastudio/internal/database"
	"yogastudio/internal/handlers"
	"yogastudio/internal/models"
	"yogastudio/internal/security"
)

type apiFixture struct {
	srv        *httptest.Server
	adminToken string
	adminID    int64
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "studio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations("../../migrations"))

	startup := handlers.NewStartupStatus()
	startup.MarkReady()
	s := New(db, Options{
		Tokens:  security.NewTokenManager("test-secret", time.Hour),
		Startup: startup,
	})
	require.NoError(t, s.Seed.Seed("yoga@studio.com", "test!1234"))

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	f := &apiFixture{srv: srv}
	info := f.login(t, "yoga@studio.com", "test!1234")
	f.adminToken, f.adminID = info.Token, info.ID
	return f
}

func (f *apiFixture) call(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (f *apiFixture) login(t *testing.T, email, password string) models.SessionInformation {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, status, string(body))
	var info models.SessionInformation
	require.NoError(t, json.Unmarshal(body, &info))
	return info
}

func (f *apiFixture) register(t *testing.T, email string) models.SessionInformation {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Email: email, FirstName: "Jane", LastName: "Doe", Password: "secret!1",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	return f.login(t, email, "secret!1")
}

func (f *apiFixture) createSession(t *testing.T) models.Session {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/session", f.adminToken, models.Session{
		Name:        "Sunrise flow",
		Description: "Wake up gently",
		Date:        time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC),
		TeacherID:   1,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var session models.Session
	require.NoError(t, json.Unmarshal(body, &session))
	return session
}

func TestAuthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.call(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Email: "jane@studio.com", FirstName: "Jane", LastName: "Doe", Password: "secret!1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"User registered successfully!"}`, string(body))

	status, body = f.call(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Email: "jane@studio.com", FirstName: "Jane", LastName: "Doe", Password: "secret!1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Error: Email is already taken!"}`, string(body))

	status, _ = f.call(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = f.call(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "jane@studio.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"Bad credentials"}`, string(body))

	info := f.login(t, "jane@studio.com", "secret!1")
	assert.Equal(t, "Bearer", info.Type)
	assert.Equal(t, "jane@studio.com", info.Username)
	assert.False(t, info.Admin)
	assert.NotEmpty(t, info.Token)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/api/session", "/api/session/1", "/api/teacher", "/api/user/1"} {
		status, body := f.call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, string(body), path)

		status, _ = f.call(t, http.MethodGet, path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestSessionEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	member := f.register(t, "member@studio.com")
	session := f.createSession(t)

	t.Run("list and detail", func(t *testing.T) {
		status, body := f.call(t, http.MethodGet, "/api/session", member.Token, nil)
		require.Equal(t, http.StatusOK, status)
		var sessions []models.Session
		require.NoError(t, json.Unmarshal(body, &sessions))
		require.Len(t, sessions, 1)
		assert.Equal(t, "Sunrise flow", sessions[0].Name)

		status, _ = f.call(t, http.MethodGet, "/api/session/abc", member.Token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		status, _ = f.call(t, http.MethodGet, "/api/session/999", member.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("members cannot mutate sessions", func(t *testing.T) {
		status, _ := f.call(t, http.MethodPost, "/api/session", member.Token, session)
		assert.Equal(t, http.StatusForbidden, status)
		status, _ = f.call(t, http.MethodDelete, fmt.Sprintf("/api/session/%d", session.ID), member.Token, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("create validates payload", func(t *testing.T) {
		status, _ := f.call(t, http.MethodPost, "/api/session", f.adminToken, models.Session{Name: "no date"})
		assert.Equal(t, http.StatusBadRequest, status)

		invalid := session
		invalid.TeacherID = 999
		status, _ = f.call(t, http.MethodPost, "/api/session", f.adminToken, invalid)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	participate := fmt.Sprintf("/api/session/%d/participate/%d", session.ID, member.ID)

	t.Run("participation", func(t *testing.T) {
		status, _ := f.call(t, http.MethodPost, participate, member.Token, nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = f.call(t, http.MethodPost, participate, member.Token, nil)
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = f.call(t, http.MethodPost, fmt.Sprintf("/api/session/999/participate/%d", member.ID), member.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = f.call(t, http.MethodPost, fmt.Sprintf("/api/session/%d/participate/%d", session.ID, f.adminID), member.Token, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, body := f.call(t, http.MethodGet, fmt.Sprintf("/api/session/%d", session.ID), member.Token, nil)
		require.Equal(t, http.StatusOK, status)
		var got models.Session
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, []int64{member.ID}, got.Users)

		status, _ = f.call(t, http.MethodDelete, participate, member.Token, nil)
		require.Equal(t, http.StatusOK, status)
		status, _ = f.call(t, http.MethodDelete, participate, member.Token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("update and delete", func(t *testing.T) {
		updated := session
		updated.Name = "Sunset flow"
		status, body := f.call(t, http.MethodPut, fmt.Sprintf("/api/session/%d", session.ID), f.adminToken, updated)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Contains(t, string(body), "Sunset flow")

		status, _ = f.call(t, http.MethodDelete, fmt.Sprintf("/api/session/%d", session.ID), f.adminToken, nil)
		require.Equal(t, http.StatusOK, status)
		status, _ = f.call(t, http.MethodGet, fmt.Sprintf("/api/session/%d", session.ID), f.adminToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestTeacherEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.call(t, http.MethodGet, "/api/teacher", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var teachers []models.Teacher
	require.NoError(t, json.Unmarshal(body, &teachers))
	assert.Len(t, teachers, 2)

	status, body = f.call(t, http.MethodGet, "/api/teacher/1", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "DELAHAYE")

	status, _ = f.call(t, http.MethodGet, "/api/teacher/x", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = f.call(t, http.MethodGet, "/api/teacher/42", f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	member := f.register(t, "member@studio.com")
	userPath := fmt.Sprintf("/api/user/%d", member.ID)

	status, body := f.call(t, http.MethodGet, userPath, member.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"email":"member@studio.com"`)
	assert.NotContains(t, string(body), "password")

	status, _ = f.call(t, http.MethodDelete, userPath, f.adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.call(t, http.MethodDelete, "/api/user/999", member.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.call(t, http.MethodDelete, userPath, member.Token, nil)
	require.Equal(t, http.StatusOK, status)

	// The token outlives the account but no longer authenticates
	status, _ = f.call(t, http.MethodGet, userPath, member.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOperationalEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.call(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"ready":true`)

	f.call(t, http.MethodGet, "/api/teacher", f.adminToken, nil)
	status, body = f.call(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(body), `path="GET /api/teacher"`), "metrics should be labelled by route pattern")
}
