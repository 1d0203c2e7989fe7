package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/i18n"
	"github.com/rentaldesk/rental-bff/internal/session"
)

const (
	// SessionKey is the gin context key of the caller's session.
	SessionKey = "session"
	// SessionExpiredHeader tells the UI the token was dropped and the user
	// must sign in again.
	SessionExpiredHeader = "X-Session-Expired"
)

// tokenSchemes are the accepted Authorization schemes. The API itself uses JWT.
var tokenSchemes = []string{"JWT ", "Bearer "}

// Session builds the caller's session from the Authorization header and the
// request cookies. A token whose exp claim has passed starts signed out.
// Whenever the session is signed out during the request the response carries
// X-Session-Expired.
func Session() gin.HandlerFunc {
	return SessionWithClock(time.Now)
}

// SessionWithClock is Session with an injectable clock.
func SessionWithClock(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.New(bearerToken(c.GetHeader("Authorization")), c.Request.Cookies()...)
		sess.OnSignOut(func() {
			c.Header(SessionExpiredHeader, "true")
		})
		if sess.Expired(now()) {
			sess.SignOut()
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	for _, scheme := range tokenSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// GetSession returns the caller's session, or an anonymous one when the
// Session middleware did not run.
func GetSession(c *gin.Context) *session.Session {
	if v, exists := c.Get(SessionKey); exists {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.New("")
}

// Identity returns the email or username of the caller's token, or "".
func Identity(c *gin.Context) string {
	sess := GetSession(c)
	if !sess.IsAuthenticated() {
		return ""
	}
	claims, err := sess.Claims()
	if err != nil {
		return ""
	}
	return claims.Identity()
}

// RequireSession rejects requests without a live token.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess.IsAuthenticated() {
			c.Next()
			return
		}

		key := i18n.ErrKeyTokenRequired
		if sess.SignedOut() {
			key = i18n.ErrKeySessionExpired
		}
		message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
	}
}
