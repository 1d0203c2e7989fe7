package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/logger"
	"github.com/rentaldesk/rental-bff/internal/service"
)

// skipLogPaths are probe and scrape endpoints that would flood the log store.
var skipLogPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger logs every request to the console and, when loggingService
// is set, stores it through the async logger.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if skipLogPaths[path] {
			return
		}

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		identity := Identity(c)

		l := logger.FromContext(c.Request.Context()).With().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("identity", identity).
			Logger()

		switch {
		case statusCode >= 500:
			l.Error().Msg("HTTP request")
		case statusCode >= 400:
			l.Warn().Msg("HTTP request")
		default:
			l.Info().Msg("HTTP request")
		}

		if loggingService == nil {
			return
		}
		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Level:      getLogLevel(statusCode),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Identity:   identity,
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		store(loggingService, entry)
	}
}

// store hands entry to the async logger, or writes it from a goroutine when
// the async logger is not running.
func store(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
