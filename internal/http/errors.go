package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rentaldesk/rental-bff/internal/circuitbreaker"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/i18n"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/repository"
	"github.com/rentaldesk/rental-bff/internal/service"
)

// DefaultVerificationURL is the UI page users are sent to when the API
// requires email verification.
const DefaultVerificationURL = "/verify-email"

// ErrorMapper turns handler errors into API error responses.
type ErrorMapper struct {
	// VerificationURL is sent as Location when the API requires the user to
	// verify their email first.
	VerificationURL string
}

// Respond writes the error response for err.
func (m ErrorMapper) Respond(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)

	var (
		formErrs  contractform.ValidationErrors
		fieldErr  *dto.ValidationError
		paramErr  *querycache.ParamError
		gqlErr    *graphql.Error
		httpError *graphql.HTTPError
	)
	switch {
	case errors.As(err, &formErrs):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidation, formErrs.Details(), err)
	case errors.As(err, &fieldErr):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidation, fieldErr.Details(), err)
	case errors.As(err, &paramErr):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidParameter,
			map[string]string{paramErr.Param: "must be a valid " + paramErr.Kind.String()}, err)
	case errors.Is(err, querycache.ErrInvalidParam):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidParameter, err)
	case errors.Is(err, contractform.ErrUnknownStep):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyDraftUnknownStep, err)

	case errors.Is(err, graphql.ErrVerificationRequired):
		if m.VerificationURL != "" {
			c.Header("Location", m.VerificationURL)
		}
		builder.ErrorWithCode(http.StatusConflict, dto.ErrCodeVerificationRequired, i18n.ErrKeyVerificationRequired, err)
	case errors.Is(err, graphql.ErrSignatureExpired), errors.Is(err, graphql.ErrUnauthorized):
		key := i18n.ErrKeyUnauthorized
		if middleware.GetSession(c).SignedOut() {
			c.Header(middleware.SessionExpiredHeader, "true")
			key = i18n.ErrKeySessionExpired
		}
		builder.Error(http.StatusUnauthorized, key, err)

	case errors.Is(err, repository.ErrDraftNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyDraftNotFound, err)
	case errors.Is(err, rental.ErrEmptyResponse):
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
	case errors.Is(err, repository.ErrDraftConflict):
		builder.Error(http.StatusConflict, i18n.ErrKeyDraftConflict, err)
	case errors.Is(err, service.ErrStepForward):
		builder.Error(http.StatusConflict, i18n.ErrKeyDraftStepForward, err)
	case errors.Is(err, contractform.ErrLastStep):
		builder.Error(http.StatusConflict, i18n.ErrKeyDraftLastStep, err)

	case errors.As(err, &gqlErr):
		builder.ErrorWithMessage(http.StatusUnprocessableEntity, gqlErr.Message, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	case errors.As(err, &httpError), errors.Is(err, graphql.ErrTransport):
		builder.Error(http.StatusBadGateway, i18n.ErrKeyUpstream, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// RespondBind writes the error response for a body that could not be
// decoded or failed validation.
func (m ErrorMapper) RespondBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[lowerFirst(fe.Field())] = bindMessage(fe)
		}
		NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidation, details, err)
		return
	}

	var formErrs contractform.ValidationErrors
	var fieldErr *dto.ValidationError
	if errors.As(err, &formErrs) || errors.As(err, &fieldErr) {
		m.Respond(c, err)
		return
	}
	NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
