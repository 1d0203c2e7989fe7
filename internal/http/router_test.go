//go:build !integration

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRouterConfig(t *testing.T) {
	cfg := DefaultRouterConfig()

	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, middleware.DefaultRequestTimeout, cfg.RequestTimeout)
	assert.True(t, cfg.EnableIdempotency)
	assert.Equal(t, DefaultVerificationURL, cfg.VerificationURL)
}

func TestNewRouter_Infrastructure(t *testing.T) {
	tests := []struct {
		name       string
		configure  func(*RouterConfig)
		path       string
		wantStatus int
	}{
		{name: "liveness", path: "/healthz", wantStatus: http.StatusOK},
		{name: "readiness", path: "/readyz", wantStatus: http.StatusOK},
		{name: "metrics", path: "/metrics", wantStatus: http.StatusOK},
		{
			name: "swagger behind basic auth",
			configure: func(cfg *RouterConfig) {
				cfg.SwaggerUser, cfg.SwaggerPass = "docs", "secret"
			},
			path:       "/swagger/index.html",
			wantStatus: http.StatusUnauthorized,
		},
		{name: "unknown route", path: "/api/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testRouterConfig(t, newFakeAPI(t, nil))
			if tt.configure != nil {
				tt.configure(&cfg)
			}
			router := NewRouter(NewHealthHandler(), cfg)

			w := serve(router, http.MethodGet, tt.path, "", "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestNewRouter_WithoutRentalAPI(t *testing.T) {
	router := NewRouter(NewHealthHandler(), DefaultRouterConfig())

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/auth/login", "{}", "").Code)
}

func TestNewRouter_ProtectedRoutesNeedSession(t *testing.T) {
	router := newTestRouter(t, newFakeAPI(t, nil))

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/clients"},
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/offices"},
		{http.MethodPost, "/api/contracts/quote"},
		{http.MethodPost, "/api/internal-orders/io1/receive"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := serve(router, p.method, p.path, "", "")

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, dto.ErrCodeUnauthorized, decode(t, w).Error)
		})
	}
}

func TestNewRouter_ExpiredToken(t *testing.T) {
	router := newTestRouter(t, newFakeAPI(t, nil))

	claims := session.Claims{
		Email:            "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/api/clients", "", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "true", w.Header().Get(middleware.SessionExpiredHeader))
}

func TestNewRouter_RateLimit(t *testing.T) {
	cfg := testRouterConfig(t, newFakeAPI(t, nil))
	cfg.RateLimit = 2
	cfg.RateWindow = time.Minute
	router := NewRouter(NewHealthHandler(), cfg)

	for range 2 {
		require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "", "").Code)
	}
	w := serve(router, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestNewRouter_Idempotency(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"CreateLocality": `{"data":{"createLocality":{"locality":{"id":"l1","name":"Rosario"}}}}`,
	})
	cfg := testRouterConfig(t, api)
	cfg.EnableIdempotency = true
	router := NewRouter(NewHealthHandler(), cfg)
	token := testToken(t, "ana@example.com")

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/localities", strings.NewReader(`{"name":"Rosario","state":"Santa Fe","postalCode":"2000"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "JWT "+token)
		req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := post()
	second := post()

	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, 1, api.count("CreateLocality"))
}

func TestNewRouter_CORS(t *testing.T) {
	cfg := testRouterConfig(t, newFakeAPI(t, nil))
	cfg.CORSOrigins = []string{"https://app.example.com"}
	router := NewRouter(NewHealthHandler(), cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Idempotency-Key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), middleware.SessionExpiredHeader)
}
