package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/models"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.EnsureAdmin(db, "admin", "admin"))

	cfg := &config.Config{
		Environment:     "development",
		SessionSecret:   "test_session_secret",
		SessionTTLHours: 1,
	}

	router := gin.New()
	SetupRoutes(router, db, cfg)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine, username, password string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func TestHealth(t *testing.T) {
	router := newTestServer(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginAndRoleGating(t *testing.T) {
	router := newTestServer(t)

	// Unauthenticated requests are denied uniformly.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/admin/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/v1/patient/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bad credentials.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	adminCookie := login(t, router, "admin", "admin")
	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/dashboard", nil, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The admin session does not open the patient surface.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/patient/dashboard", nil, adminCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterLoginBookFlow(t *testing.T) {
	router := newTestServer(t)
	adminCookie := login(t, router, "admin", "admin")

	// Admin creates the doctor.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/doctors", gin.H{
		"fullName":        "Jane Doe",
		"specialization":  "Cardiology",
		"experienceYears": 8,
	}, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"jane.doe"`)

	// Duplicate doctor conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/doctors", gin.H{
		"fullName":       "Jane Doe",
		"specialization": "Oncology",
	}, adminCookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Patient self-registers and logs in.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice", "password": "secret123", "fullName": "Alice A",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	patientCookie := login(t, router, "alice", "secret123")

	// Registering the doctor's username is rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "jane.doe", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Patient books the slot; a second booking conflicts.
	book := gin.H{"doctorId": 1, "date": "2024-01-10", "timeSlot": "08:00-12:00"}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/patient/appointments", book, patientCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doJSON(t, router, http.MethodPost, "/api/v1/patient/appointments", book, patientCookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// An unparseable date is invalid input.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/patient/appointments", gin.H{
		"doctorId": 1, "date": "next tuesday", "timeSlot": "08:00-12:00",
	}, patientCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The doctor completes the appointment with a treatment.
	doctorCookie := login(t, router, "jane.doe", "doctor123")
	rec = doJSON(t, router, http.MethodPut, "/api/v1/doctor/appointments/1/treatment", gin.H{
		"diagnosis":    "Flu",
		"prescription": "Rest",
		"medicines":    "Paracetamol",
	}, doctorCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Patient sees the treatment in their history.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/patient/history", nil, patientCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flu")

	// Logout clears the session cookie.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, patientCookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}
