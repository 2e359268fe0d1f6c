package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orgpulse-survey/internal/adapters/http/handlers"
	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/pkg/cache"
)

func newMasterApp(t *testing.T) (*fiber.App, *gorm.DB, *cache.Cache) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	c := cache.New()
	handler := handlers.NewMasterHandler(
		repositories.NewJobRepository(db),
		repositories.NewDepartmentRepository(db),
		c,
	)

	app := fiber.New()
	app.Get("/master/jobs", handler.ListJobs)
	app.Post("/master/jobs", handler.CreateJob)
	app.Get("/master/departments", handler.ListDepartments)

	return app, db, c
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestMasterHandler_ListJobsCached(t *testing.T) {
	t.Parallel()

	app, db, c := newMasterApp(t)

	require.NoError(t, db.Create(&models.Job{Code: 1, Name: "Director"}).Error)

	// First read fills the cache.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/master/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, c.Len())

	// A row inserted behind the cache stays invisible within the TTL.
	require.NoError(t, db.Create(&models.Job{Code: 2, Name: "Manager"}).Error)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/master/jobs", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	jobs := body["data"].(map[string]interface{})["jobs"].([]interface{})
	assert.Len(t, jobs, 1)
}

func TestMasterHandler_CreateInvalidatesCache(t *testing.T) {
	t.Parallel()

	app, _, c := newMasterApp(t)

	// Prime the cache with an empty list.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/master/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload, err := json.Marshal(map[string]interface{}{"code": 1, "name": "Director"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/master/jobs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// The mutation evicted the stale list, so the new job is visible.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/master/jobs", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	jobs := body["data"].(map[string]interface{})["jobs"].([]interface{})
	assert.Len(t, jobs, 1)
	assert.Equal(t, 1, c.Len())
}

func TestMasterHandler_CreateJobConflict(t *testing.T) {
	t.Parallel()

	app, db, _ := newMasterApp(t)

	require.NoError(t, db.Create(&models.Job{Code: 1, Name: "Director"}).Error)

	payload, err := json.Marshal(map[string]interface{}{"code": 1, "name": "Copycat"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/master/jobs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestMasterHandler_DepartmentsCacheIsSeparate(t *testing.T) {
	t.Parallel()

	app, db, c := newMasterApp(t)

	require.NoError(t, db.Create(&models.Department{Name: "Sales"}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/master/departments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/master/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 2, c.Len())
}
