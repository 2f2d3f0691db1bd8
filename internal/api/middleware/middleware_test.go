package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moovely/greener/internal/logger"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	t.Run("generates new request ID", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		headerID := w.Header().Get(RequestIDHeader)
		if headerID == "" {
			t.Fatal("Expected X-Request-ID header to be set")
		}
		if w.Body.String() != headerID {
			t.Errorf("Expected body %s, got %s", headerID, w.Body.String())
		}
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "upstream-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Body.String() != "upstream-123" {
			t.Errorf("Expected upstream-123, got %s", w.Body.String())
		}
	})

	t.Run("replaces unsafe upstream IDs", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		for _, upstream := range []string{
			"forged\nlevel=error",
			"<script>",
			strings.Repeat("a", 65),
		} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, upstream)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Body.String()
			if got == upstream {
				t.Errorf("Expected %q to be replaced", upstream)
			}
			if len(got) != 36 || w.Header().Get(RequestIDHeader) != got {
				t.Errorf("Expected a generated UUID, got %q", got)
			}
		}
	})

	t.Run("GetRequestID returns empty string if not set", func(t *testing.T) {
		if id := GetRequestID(&gin.Context{}); id != "" {
			t.Errorf("Expected empty string, got %s", id)
		}
	})
}

func TestLogger_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, zerolog.DebugLevel)

	router := gin.New()
	router.Use(RequestID())
	router.Use(Logger(log))
	router.GET("/ok", func(c *gin.Context) {
		if GetLogger(c) == nil {
			t.Error("Expected request logger in context")
		}
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok?x=1", "/missing", "/broken"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	for _, want := range []string{
		`"level":"info"`, `"message":"Request completed"`, `"query":"x=1"`,
		`"level":"warn"`, `"status":404`,
		`"level":"error"`, `"status":500`, `"request_id"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %s\n%s", want, out)
		}
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, zerolog.DebugLevel)

	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INTERNAL_SERVER_ERROR") {
		t.Errorf("Expected error envelope, got %s", w.Body.String())
	}
	if !strings.Contains(buf.String(), "panic: boom") {
		t.Errorf("Expected panic to be logged, got %s", buf.String())
	}
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allows configured origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Expected allowed origin header, got %q", got)
		}
	})

	t.Run("rejects other origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"*"}))
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin header, got %q", got)
		}
	})
}
