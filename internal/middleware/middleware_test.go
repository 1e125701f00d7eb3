package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"list-timeline/internal/middleware"
	"list-timeline/pkg/log"
)

func newEngine(mw middleware.Middleware, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.RequestID(), mw.AccessLog())
	r.GET("/ping", mw.RateLimit(), handler)
	return r
}

func TestRequestID(t *testing.T) {
	var seen string
	r := newEngine(middleware.New(log.NewNop(), middleware.Config{}), func(c *gin.Context) {
		seen = log.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(middleware.HeaderRequestID)
		if id == "" || id != seen {
			t.Errorf("expected generated id in header and context, got %q / %q", id, seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")
		r.ServeHTTP(w, req)
		if w.Header().Get(middleware.HeaderRequestID) != "req-42" || seen != "req-42" {
			t.Errorf("expected caller id to be reused, got %q", seen)
		}
	})
}

func TestRateLimit(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("disabled", func(t *testing.T) {
		r := newEngine(middleware.New(log.NewNop(), middleware.Config{}), ok)
		for i := 0; i < 20; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i, w.Code)
			}
		}
	})

	t.Run("per client", func(t *testing.T) {
		// 10 per minute allows a burst of one.
		r := newEngine(middleware.New(log.NewNop(), middleware.Config{RateLimitPerMin: 10}), ok)

		send := func(ip string) int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = ip + ":1234"
			r.ServeHTTP(w, req)
			return w.Code
		}

		if code := send("10.0.0.1"); code != http.StatusOK {
			t.Errorf("first request: expected 200, got %d", code)
		}
		if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
			t.Errorf("second request: expected 429, got %d", code)
		}
		if code := send("10.0.0.2"); code != http.StatusOK {
			t.Errorf("other client: expected 200, got %d", code)
		}
	})
}
