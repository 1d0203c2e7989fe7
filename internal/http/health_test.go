//go:build !integration

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	openBreaker := func() *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, Timeout: time.Hour, Name: "drafts"})
		_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
		return cb
	}

	tests := []struct {
		name        string
		setup       func(*HealthHandler)
		wantStatus  int
		wantOverall string
		wantChecks  map[string]any
	}{
		{
			name:        "no dependencies",
			setup:       func(*HealthHandler) {},
			wantStatus:  http.StatusOK,
			wantOverall: "ok",
			wantChecks:  map[string]any{"service": "ok"},
		},
		{
			name: "healthy store and closed breaker",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("mongodb", CheckerFunc(func(context.Context) error { return nil }))
				h.RegisterCircuitBreaker("drafts", circuitbreaker.New(circuitbreaker.DefaultConfig()))
			},
			wantStatus:  http.StatusOK,
			wantOverall: "ok",
			wantChecks:  map[string]any{"mongodb": "ok", "drafts_circuit": "closed"},
		},
		{
			name: "failing check",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("redis", CheckerFunc(func(context.Context) error { return errors.New("connection refused") }))
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantOverall: "degraded",
			wantChecks:  map[string]any{"redis": "connection refused"},
		},
		{
			name: "open breaker",
			setup: func(h *HealthHandler) {
				h.RegisterCircuitBreaker("drafts", openBreaker())
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantOverall: "degraded",
			wantChecks:  map[string]any{"drafts_circuit": "open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler()
			tt.setup(handler)
			router := gin.New()
			handler.Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Status string         `json:"status"`
				Checks map[string]any `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantOverall, body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}

func TestHealthHandler_ReadinessCheckHasDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler()
	handler.RegisterChecker("mongodb", CheckerFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("no deadline")
		}
		return nil
	}))
	router := gin.New()
	handler.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
