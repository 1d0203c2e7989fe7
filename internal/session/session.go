// Package session holds the per-caller authentication state that the
// GraphQL client reads and may tear down.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned when claims are requested from an anonymous session.
var ErrNoToken = errors.New("session has no token")

// Claims are the fields read from the API's JWT. The signature is not checked
// here; the GraphQL API is the verifier.
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the best human identifier in the claims.
func (c *Claims) Identity() string {
	if c.Email != "" {
		return c.Email
	}
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}

// Session is the authentication state of one caller. It is safe for
// concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	cookies   []*http.Cookie
	signedOut bool
	onSignOut []func()
}

// New creates a session. An empty token is an anonymous session.
func New(token string, cookies ...*http.Cookie) *Session {
	return &Session{token: token, cookies: cookies}
}

// Token returns the current token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Cookies returns the cookies forwarded with every API call.
func (s *Session) Cookies() []*http.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*http.Cookie, len(s.cookies))
	copy(out, s.cookies)
	return out
}

// IsAuthenticated reports whether the session carries a token.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Fingerprint returns a hex SHA-256 of the token, or "" when anonymous.
// Two sessions share a fingerprint only when they carry the same token.
func (s *Session) Fingerprint() string {
	token := s.Token()
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// SignIn stores a fresh token.
func (s *Session) SignIn(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.signedOut = false
}

// SignOut clears the token and runs the sign-out hooks.
// Signing out an anonymous session is a no-op.
func (s *Session) SignOut() {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.signedOut = true
	hooks := make([]func(), len(s.onSignOut))
	copy(hooks, s.onSignOut)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// SignedOut reports whether the session was signed out during its lifetime.
func (s *Session) SignedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedOut
}

// OnSignOut registers fn to run when the session is signed out.
func (s *Session) OnSignOut(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignOut = append(s.onSignOut, fn)
}

// Claims decodes the token payload without verifying its signature.
func (s *Session) Claims() (*Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return ParseClaims(token)
}

// Expired reports whether the token's exp claim is before now. Tokens without
// an exp claim never expire here.
func (s *Session) Expired(now time.Time) bool {
	claims, err := s.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

// ParseClaims decodes a JWT payload without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
