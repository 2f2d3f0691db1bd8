package apierrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/moovely/greener/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.Error.RequestID)
	return w, resp
}

func TestNotFound(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) { NotFound(c, "location not found: atlantis") })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrNotFound, resp.Error.Code)
	assert.Equal(t, "location not found: atlantis", resp.Error.Message)
}

func TestBadRequest(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		BadRequest(c, "bad slug", map[string]any{"slug": "x"})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrBadRequest, resp.Error.Code)
	assert.Equal(t, "x", resp.Error.Details["slug"])
}

func TestInternalServerError_HidesCause(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		InternalServerError(c, "Failed to load persona", errors.New("redis: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrInternalServer, resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestServiceUnavailable(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) { ServiceUnavailable(c, "no store") })

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, ErrUnavailable, resp.Error.Code)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Bed    string  `validate:"oneof=one two three"`
		Salary float64 `validate:"gte=0"`
		From   string  `validate:"required"`
	}
	err := validator.New().Struct(request{Bed: "four", Salary: -1})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	w, resp := serve(t, func(c *gin.Context) { ValidationError(c, verrs) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrValidation, resp.Error.Code)
	assert.Equal(t, "Must be one of: one two three", resp.Error.Details["Bed"])
	assert.Equal(t, "Must be greater than or equal to 0", resp.Error.Details["Salary"])
	assert.Equal(t, "This field is required", resp.Error.Details["From"])
}
