//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_bearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "JWT scheme", header: "JWT abc.def.ghi", expected: "abc.def.ghi"},
		{name: "Bearer scheme", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "scheme is case insensitive", header: "bearer abc", expected: "abc"},
		{name: "surrounding spaces", header: "  JWT   abc  ", expected: "abc"},
		{name: "unknown scheme", header: "Basic dXNlcjpwYXNz", expected: ""},
		{name: "scheme without token", header: "JWT ", expected: ""},
		{name: "empty header", header: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bearerToken(tt.header))
		})
	}
}

func TestSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		authorization   string
		cookie          *http.Cookie
		expectAuth      bool
		expectIdentity  string
		expectExpiredHd bool
		expectCookies   int
	}{
		{
			name:           "anonymous request",
			expectAuth:     false,
			expectIdentity: "",
		},
		{
			name:           "live token",
			authorization:  "JWT " + signedToken(t, "ana@example.com", now.Add(time.Hour)),
			expectAuth:     true,
			expectIdentity: "ana@example.com",
		},
		{
			name:            "expired token starts signed out",
			authorization:   "JWT " + signedToken(t, "ana@example.com", now.Add(-time.Minute)),
			expectAuth:      false,
			expectExpiredHd: true,
		},
		{
			name:          "cookies are carried",
			cookie:        &http.Cookie{Name: "csrftoken", Value: "abc"},
			expectCookies: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SessionWithClock(func() time.Time { return now }))
			router.GET("/test", func(c *gin.Context) {
				sess := GetSession(c)
				assert.Equal(t, tt.expectAuth, sess.IsAuthenticated())
				assert.Equal(t, tt.expectIdentity, Identity(c))
				assert.Len(t, sess.Cookies(), tt.expectCookies)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)
			if tt.expectExpiredHd {
				assert.Equal(t, "true", w.Header().Get(SessionExpiredHeader))
			} else {
				assert.Empty(t, w.Header().Get(SessionExpiredHeader))
			}
		})
	}
}

func TestSession_SignOutDuringRequestSetsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Session())
	router.GET("/test", func(c *gin.Context) {
		GetSession(c).SignOut()
		c.Status(http.StatusUnauthorized)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "JWT "+signedToken(t, "ana@example.com", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "true", w.Header().Get(SessionExpiredHeader))
}

func TestGetSession_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	sess := GetSession(c)
	require.NotNil(t, sess)
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, Identity(c))
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Now()

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
		mustContain    string
	}{
		{
			name:           "allows a live token",
			authorization:  "JWT " + signedToken(t, "ana@example.com", now.Add(time.Hour)),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects anonymous callers",
			expectedStatus: http.StatusUnauthorized,
			mustContain:    "Authentication token is required",
		},
		{
			name:           "tells expired callers to sign in again",
			authorization:  "JWT " + signedToken(t, "ana@example.com", now.Add(-time.Hour)),
			expectedStatus: http.StatusUnauthorized,
			mustContain:    "Your session has expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Session(), RequireSession())
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mustContain != "" {
				assert.Contains(t, w.Body.String(), tt.mustContain)
				assert.Contains(t, w.Body.String(), "unauthorized")
			}
		})
	}
}
