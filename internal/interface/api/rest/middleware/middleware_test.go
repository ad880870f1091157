package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"contacts-api/internal/application/ports"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/metrics"
)

type fakeResolver struct {
	tokens map[string]user.ID
}

func (f fakeResolver) Resolve(_ context.Context, token string) (user.ID, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, errors.New("unknown token")
	}
	return id, nil
}

type fakeLimiter struct {
	keys     []string
	decision ports.RateDecision
	err      error
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

func echoUser(c *gin.Context) {
	id, ok := UserID(c)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": int64(id)})
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", AuthMiddleware(fakeResolver{tokens: map[string]user.ID{"good": 7}}), echoUser)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"ok", "Bearer good", http.StatusOK, `{"user_id":7}`},
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing Authorization header"}`},
		{"no bearer prefix", "good", http.StatusUnauthorized, `{"error":"invalid token format"}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"error":"invalid token format"}`},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, `{"error":"invalid token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestUserID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set(CtxUserID, "7")
	_, ok = UserID(c)
	assert.False(t, ok)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		limiter        *fakeLimiter
		wantStatus     int
		wantBody       string
		wantRetryAfter string
		wantLimited    float64
	}{
		{
			name:       "allowed",
			limiter:    &fakeLimiter{decision: ports.RateDecision{Allowed: true}},
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name:           "throttled",
			limiter:        &fakeLimiter{decision: ports.RateDecision{RetryAfter: 41500 * time.Millisecond}},
			wantStatus:     http.StatusTooManyRequests,
			wantBody:       `{"error":"too many requests"}`,
			wantRetryAfter: "42",
			wantLimited:    1,
		},
		{
			name:           "throttled with expired window",
			limiter:        &fakeLimiter{decision: ports.RateDecision{}},
			wantStatus:     http.StatusTooManyRequests,
			wantBody:       `{"error":"too many requests"}`,
			wantRetryAfter: "1",
			wantLimited:    1,
		},
		{
			name:       "backend down",
			limiter:    &fakeLimiter{err: errors.New("dial tcp: refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"rate limiter unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := newCounter()
			reached := false

			r := gin.New()
			g := r.Group("/api/v1/contacts", RateLimitMiddleware(tt.limiter, zap.NewNop(), counter))
			g.GET("/:contact_id", func(c *gin.Context) {
				reached = true
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts/5", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantRetryAfter, w.Header().Get("Retry-After"))
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			assert.Equal(t, tt.wantLimited, testutil.ToFloat64(counter.WithLabelValues(metrics.RateLimited)))

			require.Len(t, tt.limiter.keys, 1)
			assert.Equal(t, "rl:10.0.0.1:GET:/api/v1/contacts/:contact_id", tt.limiter.keys[0])
		})
	}
}

func TestRateLimitMiddleware_BeforeAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := &fakeLimiter{decision: ports.RateDecision{RetryAfter: time.Second}}

	r := gin.New()
	g := r.Group("/api/v1/contacts",
		RateLimitMiddleware(limiter, zap.NewNop(), nil),
		AuthMiddleware(fakeResolver{}),
	)
	g.GET("", echoUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code, "throttling wins over a missing token")
}

func TestRateLimitMiddleware_NilLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RateLimitMiddleware(nil, zap.NewNop(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLogGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	counter := newCounter()

	r := gin.New()
	r.Use(RequestLogGin(zap.New(core), counter))
	r.POST("/api/v1/contacts", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusCreated, body)
	})
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/api/v1/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(`{"first_name":"Jo"}`)))
	require.Equal(t, http.StatusCreated, w.Code, "handler still sees the body")
	assert.JSONEq(t, `{"first_name":"Jo"}`, w.Body.String())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/api/v1/contacts", first["url"])
	assert.Equal(t, int64(http.StatusCreated), first["status"])
	assert.Equal(t, `{"first_name":"Jo"}`, first["body"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	assert.Equal(t, 2.0, testutil.ToFloat64(counter.WithLabelValues(metrics.RequestsTotal)))
}
