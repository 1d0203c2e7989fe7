package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/i18n"
	"github.com/rentaldesk/rental-bff/internal/logger"
)

// ErrorHandler logs the errors handlers attached to the gin context and
// answers 500 when none of them wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		event := logger.FromContext(c.Request.Context()).Warn()
		if !c.Writer.Written() || c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.FromContext(c.Request.Context()).Error()
		}
		event.
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status_code", c.Writer.Status()).
			Msg("Request error")

		if !c.Writer.Written() {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.JSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(GetRequestID(c)))
		}
	}
}
