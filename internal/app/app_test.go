package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/village-portal/internal/app"
	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/seed"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "village-portal-test", Version: "test"},
		Slots: config.SlotConfig{Backend: config.BackendMemory, SeedOnEmpty: true},
		Auth:  config.AuthConfig{JWTSecret: "test-secret"},
	}
}

type harness struct {
	t      *testing.T
	portal *app.Portal
	http   *fiber.App
}

func newHarness(t *testing.T, slots *persistence.Slots) *harness {
	t.Helper()
	if slots == nil {
		slots = persistence.NewSlots(persistence.NewMemory(), "")
	}
	portal := app.New(context.Background(), testConfig(), nil, slots, app.Options{
		Clock: func() time.Time { return testNow },
	})
	return &harness{t: t, portal: portal, http: portal.HTTP()}
}

func (h *harness) do(method, path, token string, body any) (int, map[string]any) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.http.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(h.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (h *harness) login(email string) string {
	h.t.Helper()
	status, body := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": seed.DefaultPassword})
	require.Equal(h.t, http.StatusOK, status, body)
	authBody := body["data"].(map[string]any)["auth"].(map[string]any)
	return authBody["token"].(string)
}

func errorCode(body map[string]any) string {
	e, ok := body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

func TestHealthEndpoints(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.do(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = h.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, body = h.do(http.MethodGet, "/health/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["data"], "commands")
}

func TestLogin_Responses(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "x@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(body))

	status, body = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "bob.j@email.com", "password": seed.DefaultPassword})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "NOT_APPROVED", errorCode(body))

	status, body = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@village.com", "password": seed.DefaultPassword})
	require.Equal(t, http.StatusOK, status)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "admin-1", user["id"])
	assert.NotContains(t, user, "password")
}

func TestAdminRoutes_RoleGuard(t *testing.T) {
	h := newHarness(t, nil)

	status, _ := h.do(http.MethodGet, "/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	resident := h.login("john.doe@email.com")
	status, body := h.do(http.MethodGet, "/admin/dashboard", resident, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	status, _ = h.do(http.MethodGet, "/resident/dashboard", resident, nil)
	assert.Equal(t, http.StatusOK, status)

	admin := h.login("admin@village.com")
	status, body = h.do(http.MethodGet, "/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, status)
	dash := body["data"].(map[string]any)
	assert.EqualValues(t, 3, dash["totalResidents"])
	assert.EqualValues(t, 2, dash["openServiceRequests"])

	// Only one user is signed in at a time.
	status, _ = h.do(http.MethodGet, "/resident/dashboard", resident, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterApproveAndSignIn(t *testing.T) {
	h := newHarness(t, nil)
	profile := map[string]string{"fullName": "Nia Okafor", "email": "nia@email.com", "password": "pw123"}

	status, body := h.do(http.MethodPost, "/auth/register", "", profile)
	require.Equal(t, http.StatusCreated, status, body)
	newID := body["data"].(map[string]any)["user"].(map[string]any)["id"].(string)

	status, body = h.do(http.MethodPost, "/auth/register", "", profile)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(body))

	status, _ = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "nia@email.com", "password": "pw123"})
	assert.Equal(t, http.StatusForbidden, status)

	admin := h.login("admin@village.com")
	status, body = h.do(http.MethodPatch, "/admin/residents/"+newID+"/approval", admin, map[string]bool{"approved": true})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["data"].(map[string]any)["approved"])

	status, _ = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "nia@email.com", "password": "pw123"})
	assert.Equal(t, http.StatusOK, status)
}

func TestResidentFilesRequestAndAdminResponds(t *testing.T) {
	h := newHarness(t, nil)

	resident := h.login("jane.smith@email.com")
	status, body := h.do(http.MethodPost, "/resident/requests", resident, map[string]string{
		"category":    "Roads",
		"description": "Cracked curb",
		"location":    "456 Oak Ave",
	})
	require.Equal(t, http.StatusCreated, status, body)
	reqID := body["data"].(map[string]any)["id"].(string)

	status, body = h.do(http.MethodPost, "/resident/bids/bid-1/submissions", resident, map[string]any{
		"vendorName": "Green Thumb",
		"bidAmount":  48000,
		"proposal":   "Full redesign",
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = h.do(http.MethodPost, "/resident/bids/bid-3/submissions", resident, map[string]any{
		"vendorName": "Late",
		"bidAmount":  1,
		"proposal":   "p",
	})
	assert.Equal(t, http.StatusConflict, status, body)

	admin := h.login("admin@village.com")
	status, body = h.do(http.MethodPatch, "/admin/requests/"+reqID, admin, map[string]string{
		"status":     "In Progress",
		"adminNotes": "Crew booked",
	})
	require.Equal(t, http.StatusOK, status, body)

	status, body = h.do(http.MethodGet, "/admin/bids/bid-1/submissions", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	stored, ok := h.portal.Store.Snapshot().FindServiceRequest(reqID)
	require.True(t, ok)
	assert.Equal(t, "Crew booked", stored.AdminNotes)
	assert.Equal(t, "resident-2", stored.SubmittedBy)
}

func TestAdminCrud_NotFoundAndBadPayload(t *testing.T) {
	h := newHarness(t, nil)
	admin := h.login("admin@village.com")

	status, body := h.do(http.MethodDelete, "/admin/staff/ghost", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	req := httptest.NewRequest(http.MethodPost, "/admin/staff", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := h.http.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, body = h.do(http.MethodPost, "/admin/staff", admin, map[string]string{"fullName": "Eve Adams", "role": "Librarian"})
	require.Equal(t, http.StatusCreated, status, body)
	id := body["data"].(map[string]any)["id"].(string)

	status, _ = h.do(http.MethodDelete, "/admin/staff/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestSessionSurvivesRestart(t *testing.T) {
	slots := persistence.NewSlots(persistence.NewMemory(), "")
	first := newHarness(t, slots)
	token := first.login("john.doe@email.com")

	status, _ := first.do(http.MethodPut, "/auth/me", token, map[string]string{
		"fullName": "John Q. Doe", "contactNumber": "555-000-1111", "address": "123 Main St",
	})
	require.Equal(t, http.StatusOK, status)

	second := newHarness(t, slots)
	status, body := second.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "John Q. Doe", body["data"].(map[string]any)["fullName"])

	status, _ = second.do(http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = second.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
