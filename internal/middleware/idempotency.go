package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute

	maxIdempotentBody = 1 << 20
)

// replayedHeaders are the response headers stored with a response.
var replayedHeaders = []string{"Content-Type", "Location"}

// cachedResponse is a stored response replayed for a repeated key.
type cachedResponse struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       []byte            `json:"body"`
	Timestamp  time.Time         `json:"timestamp"`
}

// IdempotencyStore keeps responses by idempotency cache key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*cachedResponse, bool)
	Set(ctx context.Context, key string, resp *cachedResponse)
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Store   IdempotencyStore
	Enabled bool
}

// DefaultIdempotencyConfig keeps responses in process memory.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Store:   newIdempotencyCache(IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the stored response of a POST, PUT or PATCH that
// repeats an Idempotency-Key with the same caller, path and body. Only 2xx
// responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := generateCacheKey(key, GetSession(c).Fingerprint(), c.Request)
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if cached, ok := cfg.Store.Get(ctx, cacheKey); ok {
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			contentType := cached.Headers["Content-Type"]
			if contentType == "" {
				contentType = "application/json; charset=utf-8"
			}
			c.Data(cached.StatusCode, contentType, cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		headers := make(map[string]string, len(replayedHeaders))
		for _, h := range replayedHeaders {
			if v := writer.Header().Get(h); v != "" {
				headers[h] = v
			}
		}
		cfg.Store.Set(ctx, cacheKey, &cachedResponse{
			StatusCode: status,
			Headers:    headers,
			Body:       writer.body.Bytes(),
			Timestamp:  time.Now(),
		})
		logger.FromContext(ctx).Debug().Str("path", c.Request.URL.Path).Msg("Stored idempotent response")
	}
}

// generateCacheKey hashes the idempotency key with the caller's token
// fingerprint and the request so a key reused for a different request, or by
// a different token, does not replay.
func generateCacheKey(idempotencyKey, caller string, req *http.Request) (string, error) {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, caller, req.Method, req.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(io.LimitReader(req.Body, maxIdempotentBody))
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// responseWriter copies the body written by the handler.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
