package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/service"
)

// LoggingServiceKey is the gin context key of the logging service.
const LoggingServiceKey = "logging_service"

// GetLoggingService returns the logging service set on the context, or nil.
func GetLoggingService(c *gin.Context) service.LoggingService {
	if v, exists := c.Get(LoggingServiceKey); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}

// Audit records a successful user action.
func Audit(c *gin.Context, actionType, message string, fields map[string]any) {
	AuditLog(GetLoggingService(c), c, actionType, message, fields)
}

// AuditError records a failed user action.
func AuditError(c *gin.Context, actionType, message string, err error, fields map[string]any) {
	AuditLogError(GetLoggingService(c), c, actionType, message, err, fields)
}

// AuditLog stores an audit entry for a user action such as sign in or a
// mutation of rental data.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, message string, fields map[string]any) {
	if loggingService == nil {
		return
	}
	store(loggingService, auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError stores an audit entry for a failed user action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, message string, err error, fields map[string]any) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	store(loggingService, entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]any) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Identity:   Identity(c),
		ActionType: actionType,
	}
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	return entry
}
