package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	endpoint   string
	statusCode int
}

type stubRecorder struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (s *stubRecorder) RecordAPIRequest(_ context.Context, endpoint string, statusCode int, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, recordedRequest{endpoint: endpoint, statusCode: statusCode})
}

func newTestRouter(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares...)
	return router
}

func TestRequestTrackingSetsRequestID(t *testing.T) {
	rec := &stubRecorder{}
	router := newTestRouter(RequestTracking(rec))

	var seenID string
	router.GET("/items/:id", func(c *gin.Context) {
		seenID = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, w.Header().Get(requestIDHeader))

	require.Len(t, rec.seen, 1)
	assert.Equal(t, "/items/:id", rec.seen[0].endpoint)
	assert.Equal(t, http.StatusOK, rec.seen[0].statusCode)
}

func TestRequestTrackingUnmatchedRoute(t *testing.T) {
	rec := &stubRecorder{}
	router := newTestRouter(RequestTracking(rec))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, rec.seen, 1)
	assert.Equal(t, "unmatched", rec.seen[0].endpoint)
}

func TestRecoverWithSentry(t *testing.T) {
	router := newTestRouter(RecoverWithSentry(), SentryMiddleware(), RequestTracking())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotEmpty(t, body["request_id"])
}

// bindCountingSentry binds a client that counts events and drops them before
// they reach the transport.
func bindCountingSentry(t *testing.T) *atomic.Int32 {
	t.Helper()
	var count atomic.Int32
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(_ *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			count.Add(1)
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })
	return &count
}

func TestPanicReportedToSentryOnce(t *testing.T) {
	events := bindCountingSentry(t)

	router := newTestRouter(RecoverWithSentry(), SentryMiddleware(), RequestTracking())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, int32(1), events.Load())
}

func TestCORS(t *testing.T) {
	handler := func(c *gin.Context) { c.String(http.StatusOK, "ok") }

	t.Run("wildcard", func(t *testing.T) {
		router := newTestRouter(CORS([]string{"*"}))
		router.GET("/x", handler)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		router := newTestRouter(CORS([]string{"https://app.example"}))
		router.GET("/x", handler)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://app.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		router := newTestRouter(CORS([]string{"https://app.example"}))
		router.GET("/x", handler)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("preflight is answered", func(t *testing.T) {
		router := newTestRouter(CORS([]string{"*"}))
		router.Any("/x", handler)

		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("passthrough route handles its own preflight", func(t *testing.T) {
		router := newTestRouter(CORS([]string{"*"}, "/x"))
		router.Any("/x", handler)

		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("bare options reaches handler", func(t *testing.T) {
		router := newTestRouter(CORS([]string{"*"}))
		router.Any("/x", handler)

		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}
