// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resources_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crude/internal/api/resources"
	"crude/internal/resource"
)

func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&resource.Resource{}))

	svc := resource.NewService(resource.NewGormStore(db))

	e := echo.New()
	resources.NewHandler(svc).Register(e.Group("/api/resources"))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestResourceLifecycle(t *testing.T) {
	e := newTestAPI(t)

	// Create with only the required fields.
	rec := do(e, http.MethodPost, "/api/resources", `{"name":"Alpha","type":"token"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Alpha", created["name"])
	assert.Equal(t, "token", created["type"])
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, map[string]any{}, created["metadata"])
	assert.Equal(t, created["created_at"], created["updated_at"])

	id := created["id"].(string)

	// Patch flips status and replaces metadata wholesale.
	rec = do(e, http.MethodPatch, "/api/resources/"+id,
		`{"status":"inactive","metadata":{"reason":"manual"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode(t, rec)
	assert.Equal(t, "inactive", patched["status"])
	assert.Equal(t, map[string]any{"reason": "manual"}, patched["metadata"])
	assert.Equal(t, created["created_at"], patched["created_at"])

	// Delete responds 204 with an empty body.
	rec = do(e, http.MethodDelete, "/api/resources/"+id, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// The id is gone for every verb.
	rec = do(e, http.MethodGet, "/api/resources/"+id, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode(t, rec)["error"])

	rec = do(e, http.MethodPatch, "/api/resources/"+id, `{"status":"active"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodDelete, "/api/resources/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidationErrors(t *testing.T) {
	e := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"type":"token"}`},
		{"blank name", `{"name":"  ","type":"token"}`},
		{"missing type", `{"name":"Alpha"}`},
		{"bad status", `{"name":"Alpha","type":"token","status":"paused"}`},
		{"empty status", `{"name":"Alpha","type":"token","status":""}`},
		{"metadata array", `{"name":"Alpha","type":"token","metadata":[]}`},
		{"metadata string", `{"name":"Alpha","type":"token","metadata":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/resources", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["error"])
		})
	}

	// Nothing was persisted by any of the rejected creates.
	rec := do(e, http.MethodGet, "/api/resources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["total"])
}

func TestListClamping(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/api/resources", `{"name":"Alpha","type":"token"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		query  string
		limit  float64
		offset float64
	}{
		{"", 20, 0},
		{"?limit=0", 1, 0},
		{"?limit=999", 100, 0},
		{"?limit=abc", 20, 0},
		{"?offset=-5", 20, 0},
		{"?offset=999999", 20, 50000},
		{"?limit=7&offset=3", 7, 3},
	}

	for _, tt := range tests {
		t.Run("q"+tt.query, func(t *testing.T) {
			rec := do(e, http.MethodGet, "/api/resources"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.limit, body["limit"])
			assert.Equal(t, tt.offset, body["offset"])
		})
	}
}

func TestListFilters(t *testing.T) {
	e := newTestAPI(t)

	for _, body := range []string{
		`{"name":"Alpha","type":"token"}`,
		`{"name":"Beta","type":"nft","status":"inactive"}`,
		`{"name":"alphabet","type":"nft"}`,
	} {
		rec := do(e, http.MethodPost, "/api/resources", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(e, http.MethodGet, "/api/resources?status=inactive", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta", items[0].(map[string]any)["name"])

	// Substring match against name is case-insensitive.
	rec = do(e, http.MethodGet, "/api/resources?q=alp", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["total"])

	rec = do(e, http.MethodGet, "/api/resources?type=nft&status=active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, float64(1), body["total"])
}

func TestGetUnknownID(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodGet, "/api/resources/no-such-id", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode(t, rec)["error"])
}

func TestPatchValidation(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/api/resources", `{"name":"Alpha","type":"token"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = do(e, http.MethodPatch, "/api/resources/"+id, `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPatch, "/api/resources/"+id, `{"metadata":[1,2,3]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The failed patches left the resource untouched.
	rec = do(e, http.MethodGet, "/api/resources/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Alpha", body["name"])
	assert.Equal(t, map[string]any{}, body["metadata"])
}
