package ginserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rukorent/internal/app/middleware"
	"rukorent/internal/app/policies"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	domainpayment "rukorent/internal/domain/payment"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/session"
	"rukorent/internal/infra/config"
	"rukorent/internal/infra/obs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRenderErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", fmt.Errorf("wrapped: %w", &domainbooking.ValidationError{Reason: domainbooking.ReasonTenantIncomplete}), http.StatusBadRequest, "tenant details incomplete."},
		{"unauthenticated", session.ErrUnauthenticated, http.StatusUnauthorized, `"redirect":"/login"`},
		{"ruko missing", ruko.ErrRukoNotFound, http.StatusNotFound, "ruko not found"},
		{"checkout missing", checkout.ErrCheckoutNotFound, http.StatusNotFound, "booking not found"},
		{"bad method", domainpayment.ErrUnknownMethod, http.StatusBadRequest, "unknown payment method"},
		{"in flight", middleware.ErrInFlight, http.StatusConflict, "already in progress"},
		{"remote rejected", &policies.SubmissionFailedError{Status: 422, Message: "tanggal tidak tersedia"}, http.StatusBadGateway, "tanggal tidak tersedia"},
		{"remote malformed", &policies.MalformedResponseError{Operation: "create booking", Reason: "missing id"}, http.StatusBadGateway, policies.DefaultSubmissionMessage},
		{"remote down", fmt.Errorf("%w: dial", policies.ErrRemoteUnavailable), http.StatusBadGateway, "unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { renderError(c, nil, tc.err) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", extractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", extractBearerToken("bearer   abc "))
	assert.Empty(t, extractBearerToken("Basic abc"))
	assert.Empty(t, extractBearerToken(""))
}

type resolverFunc func(token string, header func(string) string) (session.Session, error)

func (f resolverFunc) Resolve(token string, header func(string) string) (session.Session, error) {
	return f(token, header)
}

func TestAuthMiddlewareAttachesSession(t *testing.T) {
	mw := AuthMiddleware{Resolver: resolverFunc(func(token string, header func(string) string) (session.Session, error) {
		if token == "bad" {
			return session.Session{}, errors.New("nope")
		}
		return session.Session{Token: token, UserID: "u-1"}, nil
	})}
	r := gin.New()
	r.Use(mw.Handle)
	r.GET("/", func(c *gin.Context) {
		sess, ok := requireSession(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, sess.UserID)
	})

	for token, want := range map[string]int{"good": http.StatusOK, "bad": http.StatusUnauthorized, "": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "token %q", token)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, nil)
	r := gin.New()
	r.Use(limiter.Handle)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(60, 5, nil)
	clock := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, limiter.allow(ip))
	}
	require.Len(t, limiter.limiters, 3)

	clock = clock.Add(30 * time.Second)
	assert.True(t, limiter.allow("10.0.0.1"))
	assert.Len(t, limiter.limiters, 3)

	// Buckets refill in 5s; anything idle for the minute floor is dropped.
	clock = clock.Add(45 * time.Second)
	assert.True(t, limiter.allow("10.0.0.4"))
	assert.Len(t, limiter.limiters, 2)
	assert.Contains(t, limiter.limiters, "10.0.0.1")
	assert.Contains(t, limiter.limiters, "10.0.0.4")
}

func TestRouterHealthAndCORS(t *testing.T) {
	cfg := config.Config{CORSOrigins: []string{"http://localhost:3000"}}
	router := NewRouter(cfg, obs.Middleware{}, obs.HealthHandlers{}, Handlers{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
