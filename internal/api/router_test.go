package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/moovely/greener/internal/api/middleware"
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, withPersonas bool) *gin.Engine {
	t.Helper()
	table, err := config.LoadLocations("")
	require.NoError(t, err)

	deps := Dependencies{Locations: table, Env: "test", CORSOrigins: []string{"http://localhost:3000"}}
	if withPersonas {
		deps.Personas = persona.NewMemoryStore()
	}
	return NewRouter(deps)
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	assert.NotEmpty(t, envelope["request_id"])
	return envelope["code"].(string)
}

func TestHealthAndInfo(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = do(router, http.MethodGet, "/api/v1/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeBody(t, w)
	assert.Equal(t, "2025/26", info["tax_year"])
	assert.Equal(t, float64(13), info["locations"])
	assert.Equal(t, "test", info["environment"])
}

func TestListLocations(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(13), decodeBody(t, w)["count"])

	w = do(router, http.MethodGet, "/api/v1/locations?region=scotland", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	w = do(router, http.MethodGet, "/api/v1/locations?region=Narnia", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}

func TestGetLocation(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/locations/leeds", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Leeds", decodeBody(t, w)["name"])

	w = do(router, http.MethodGet, "/api/v1/locations/atlantis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestTax(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/tax?salary=50000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "7486", body["incomeTax"])
	assert.Equal(t, "2994", body["nationalInsurance"])
	assert.Equal(t, "39520", body["takeHome"])

	w = do(router, http.MethodGet, "/api/v1/tax?salary=50000&country=scotland", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9028", decodeBody(t, w)["incomeTax"])

	w = do(router, http.MethodGet, "/api/v1/tax", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = do(router, http.MethodGet, "/api/v1/tax?salary=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/tax?salary=30000&country=France", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNonFiniteSalary(t *testing.T) {
	router := setupRouter(t, false)

	for _, path := range []string{
		"/api/v1/tax?salary=Inf",
		"/api/v1/tax?salary=NaN",
		"/api/v1/compare/london-vs-manchester?salary=Inf",
		"/api/v1/compare/london-vs-manchester?salary=NaN",
		"/api/v1/compare/london-vs-manchester?lifestyle=NaN",
		"/api/v1/rank/london?salary=Inf",
		"/api/v1/rank/london?salary=NaN",
	} {
		t.Run(path, func(t *testing.T) {
			w := do(router, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.NotEmpty(t, errorCode(t, w))
		})
	}
}

func TestCompareSlug(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/compare/london-vs-manchester", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "8499", body["totalAnnualDiff"])
	assert.Equal(t, "greener", body["verdict"])
	assert.Equal(t, "london-vs-manchester", body["slug"])
	assert.Equal(t, false, body["isPersonalised"])

	w = do(router, http.MethodGet, "/api/v1/compare/london-vs-manchester?salary=60000&bed=one", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["isPersonalised"])
	assert.Equal(t, "60000", body["salaryTo"])
}

func TestCompareSlug_Formats(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/compare/london-vs-manchester?format=table", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "IS THE GRASS GREENER?")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	w = do(router, http.MethodGet, "/api/v1/compare/london-vs-manchester?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Body.String(), "From,To,Category,Annual Difference")

	w = do(router, http.MethodGet, "/api/v1/compare/london-vs-manchester?format=html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "Is the grass greener?")

	w = do(router, http.MethodGet, "/api/v1/compare/london-vs-manchester?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareSlug_Errors(t *testing.T) {
	router := setupRouter(t, false)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/compare/london-manchester", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/compare/london-vs-atlantis", http.StatusNotFound, "NOT_FOUND"},
		{"/api/v1/compare/london-vs-leeds?bed=four", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"/api/v1/compare/london-vs-leeds?persona=retiree", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/compare/london-vs-leeds?salary=-5", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"/api/v1/compare/london-vs-leeds?salary=Inf", http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestComparePost(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodPost, "/api/v1/compare", map[string]any{
		"from":    "london",
		"to":      "manchester",
		"options": map[string]any{"persona": "growing-family", "salary": 52000},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	options := body["options"].(map[string]any)
	assert.Equal(t, "three", options["bedSize"])
	assert.Equal(t, true, options["includeChildcare"])
	assert.Equal(t, "52000", body["salaryFrom"])

	w = do(router, http.MethodPost, "/api/v1/compare", map[string]any{"from": "london"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestRequiredSalary(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodPost, "/api/v1/required-salary", map[string]any{"from": "london", "to": "manchester"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "21856", body["required_salary"])
	assert.Equal(t, "below", body["side"])

	w = do(router, http.MethodPost, "/api/v1/required-salary", map[string]any{"from": "london"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	multi := decodeBody(t, w)
	assert.Len(t, multi["results"], 12)
	assert.NotNil(t, multi["cheapest"])

	w = do(router, http.MethodPost, "/api/v1/required-salary", map[string]any{"from": "atlantis", "to": "leeds"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRank(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/rank/london", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(12), body["count"])
	assert.Equal(t, "annual-diff", body["sort_by"])

	w = do(router, http.MethodGet, "/api/v1/rank/london?region=Scotland&region=Wales&sort=rent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	require.Equal(t, float64(3), body["count"])
	entries := body["entries"].([]any)
	first := entries[0].(map[string]any)["location"].(map[string]any)
	assert.Equal(t, "cardiff", first["id"], "cheapest two-bed rent of the three")

	w = do(router, http.MethodGet, "/api/v1/rank/london?search=york", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = do(router, http.MethodGet, "/api/v1/rank/london?sort=population", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/rank/london?region=Narnia", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonaSessions(t *testing.T) {
	router := setupRouter(t, true)

	w := do(router, http.MethodGet, "/api/v1/personas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["personas"], 3)

	w = do(router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	session := decodeBody(t, w)["session_id"].(string)
	path := "/api/v1/sessions/" + session + "/persona"

	w = do(router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPut, path, map[string]any{"persona_id": "downsizer-wfh"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decodeBody(t, w)["persona"].(map[string]any)
	assert.Equal(t, "downsizer-wfh", p["id"])

	w = do(router, http.MethodPut, path, map[string]any{"persona_id": "retiree"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/v1/sessions/not-a-uuid/persona", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonaSessions_NoStore(t *testing.T) {
	router := setupRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/sessions/"+persona.NewSessionID()+"/persona", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNoLocations(t *testing.T) {
	router := NewRouter(Dependencies{Env: "test"})

	w := do(router, http.MethodGet, "/api/v1/locations", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", errorCode(t, w))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0h 0m 5s", formatUptime(5e9))
	assert.Equal(t, "1d 2h 0m 0s", formatUptime(26*3600e9))
}
