//go:build !integration

package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/stretchr/testify/require"
)

// signedToken returns a JWT for email expiring at exp. The signature is
// irrelevant here since claims are read unverified.
func signedToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	claims := session.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}
