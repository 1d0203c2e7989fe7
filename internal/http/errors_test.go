//go:build !integration

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/circuitbreaker"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/repository"
	"github.com/rentaldesk/rental-bff/internal/service"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapper_Respond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		signedOut   bool
		wantStatus  int
		wantCode    string
		wantMessage string
		wantHeaders map[string]string
		wantDetails map[string]string
	}{
		{
			name: "form validation",
			err: contractform.ValidationErrors{
				{Field: "client_id", Rule: "required", Message: "is required"},
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeInvalidRequest,
			wantDetails: map[string]string{"client_id": "is required"},
		},
		{
			name:        "request field validation",
			err:         &dto.ValidationError{Field: "step", Message: "is not a wizard step"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeInvalidRequest,
			wantDetails: map[string]string{"step": "is not a wizard step"},
		},
		{
			name:        "query parameter",
			err:         &querycache.ParamError{Param: "page", Value: "x", Kind: querycache.Int},
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeInvalidRequest,
			wantDetails: map[string]string{"page": "must be a valid " + querycache.Int.String()},
		},
		{
			name:       "unknown step",
			err:        fmt.Errorf("parse: %w", contractform.ErrUnknownStep),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:        "verification required",
			err:         &graphql.HTTPError{StatusCode: http.StatusConflict, Status: "409 Conflict"},
			wantStatus:  http.StatusConflict,
			wantCode:    dto.ErrCodeVerificationRequired,
			wantHeaders: map[string]string{"Location": DefaultVerificationURL},
		},
		{
			name:        "api rejected the token",
			err:         &graphql.HTTPError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"},
			signedOut:   true,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    dto.ErrCodeUnauthorized,
			wantHeaders: map[string]string{middleware.SessionExpiredHeader: "true"},
		},
		{
			name:       "no session",
			err:        graphql.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   dto.ErrCodeUnauthorized,
		},
		{
			name:       "draft not found",
			err:        repository.ErrDraftNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "empty api response",
			err:        rental.ErrEmptyResponse,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "draft conflict",
			err:        repository.ErrDraftConflict,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeConflict,
		},
		{
			name:       "step forward",
			err:        service.ErrStepForward,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeConflict,
		},
		{
			name:       "last step",
			err:        contractform.ErrLastStep,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeConflict,
		},
		{
			name:        "business error",
			err:         fmt.Errorf("create client: %w", &graphql.Error{Message: "DNI already registered"}),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeBusiness,
			wantMessage: "DNI already registered",
		},
		{
			name:       "circuit open",
			err:        circuitbreaker.ErrCircuitOpen,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeUnavailable,
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrCodeTimeout,
		},
		{
			name:       "api server error",
			err:        &graphql.HTTPError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"},
			wantStatus: http.StatusBadGateway,
			wantCode:   dto.ErrCodeUpstream,
		},
		{
			name:       "transport",
			err:        fmt.Errorf("graphql Clients: %w: %w", graphql.ErrTransport, errors.New("connection refused")),
			wantStatus: http.StatusBadGateway,
			wantCode:   dto.ErrCodeUpstream,
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			sess := session.New("token")
			if tt.signedOut {
				sess.SignOut()
			}
			c.Set(middleware.SessionKey, sess)

			ErrorMapper{VerificationURL: DefaultVerificationURL}.Respond(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.Equal(t, tt.wantCode, env.Error)
			assert.NotEmpty(t, env.Message)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env.Message)
			}
			for k, v := range tt.wantHeaders {
				assert.Equal(t, v, w.Header().Get(k), k)
			}
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, env.Details)
			}
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestErrorMapper_RespondBind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type body struct {
		Email string `json:"email" binding:"required,email"`
		Count int    `json:"count" binding:"min=1"`
	}

	tests := []struct {
		name        string
		body        string
		wantDetails map[string]string
	}{
		{
			name:        "binding rules",
			body:        `{"email":"nope","count":0}`,
			wantDetails: map[string]string{"email": "must be a valid email", "count": "must be at least 1"},
		},
		{
			name: "malformed json",
			body: `{"email":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/", func(c *gin.Context) {
				if _, err := BuildRequest[body](c); err != nil {
					ErrorMapper{}.RespondBind(c, err)
					return
				}
				c.Status(http.StatusNoContent)
			})

			w := serve(router, http.MethodPost, "/", tt.body, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w)
			assert.Equal(t, dto.ErrCodeInvalidRequest, env.Error)
			assert.Equal(t, tt.wantDetails, env.Details)
		})
	}
}
