//go:build !integration

package http

import (
	"net/http"
	"testing"

	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	clientsPage = `{"data":{"clients":{"page":1,"pages":2,"hasNext":true,"hasPrev":false,
		"objects":[{"id":"1","firstName":"Ana","lastName":"Diaz","email":"ana@example.com","dni":"30111222"}]}}}`
	clientDetail  = `{"data":{"client":{"id":"1","firstName":"Ana","lastName":"Diaz","email":"ana@example.com","dni":"30111222"}}}`
	clientCreated = `{"data":{"createClient":{"client":{"id":"9","firstName":"Ana","lastName":"Diaz","email":"ana@example.com","dni":"30111222"}}}}`
	validClient   = `{"firstName":"Ana","lastName":"Diaz","email":"ana@example.com","dni":"30111222","locality":"7"}`
)

func TestClientsHandler_List(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"Clients": clientsPage})
	router := newTestRouter(t, api)
	token := testToken(t, "ana@example.com")

	t.Run("page", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/clients?query=ana&page=1", "", token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		page := decodeData[querycache.Page[rental.Client]](t, w)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Ana", page.Items[0].FirstName)
		assert.True(t, page.HasNext)
		assert.Equal(t, 2, page.Pages)
	})

	t.Run("invalid page", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/clients?page=two", "", token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w).Details, "page")
	})

	t.Run("anonymous", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/clients", "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestClientsHandler_Search(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"Clients": clientsPage})
	router := newTestRouter(t, api)
	token := testToken(t, "ana@example.com")

	tests := []struct {
		name      string
		query     string
		wantItems int
		wantCalls int
	}{
		{name: "short query is not sent", query: "an", wantItems: 0, wantCalls: 0},
		{name: "three characters", query: "ana", wantItems: 1, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, "/api/clients/search?query="+tt.query, "", token)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			page := decodeData[querycache.Page[rental.Client]](t, w)
			assert.NotNil(t, page.Items)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantCalls, api.count("Clients"))
		})
	}
}

func TestClientsHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		status     int
		wantStatus int
		wantHeader map[string]string
	}{
		{name: "found", response: clientDetail, wantStatus: http.StatusOK},
		{name: "missing", response: `{"data":{"client":null}}`, wantStatus: http.StatusNotFound},
		{
			name:       "token rejected by the api",
			status:     http.StatusUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantHeader: map[string]string{middleware.SessionExpiredHeader: "true"},
		},
		{
			name:       "email not verified",
			status:     http.StatusConflict,
			wantStatus: http.StatusConflict,
			wantHeader: map[string]string{"Location": DefaultVerificationURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, map[string]string{"Client": tt.response})
			if tt.status != 0 {
				api.failWith("Client", tt.status)
			}
			router := newTestRouter(t, api)

			w := serve(router, http.MethodGet, "/api/clients/1", "", testToken(t, "ana@example.com"))

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			for k, v := range tt.wantHeader {
				assert.Equal(t, v, w.Header().Get(k))
			}
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "30111222", decodeData[rental.Client](t, w).DNI)
			}
		})
	}
}

func TestClientsHandler_Exists(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"ClientExists": `{"data":{"clientExists":true}}`})
	router := newTestRouter(t, api)
	token := testToken(t, "ana@example.com")

	tests := []struct {
		name       string
		query      string
		wantStatus int
		want       dto.ClientExistsResponse
	}{
		{
			name:       "dni",
			query:      "?dni=30111222",
			wantStatus: http.StatusOK,
			want:       dto.ClientExistsResponse{Field: "dni", Value: "30111222", Exists: true},
		},
		{
			name:       "email",
			query:      "?email=ana@example.com",
			wantStatus: http.StatusOK,
			want:       dto.ClientExistsResponse{Field: "email", Value: "ana@example.com", Exists: true},
		},
		{name: "neither", query: "", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, "/api/clients/exists"+tt.query, "", token)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.want, decodeData[dto.ClientExistsResponse](t, w))
			}
		})
	}
}

func TestClientsHandler_Create(t *testing.T) {
	tests := []struct {
		name        string
		exists      string
		body        string
		wantStatus  int
		wantDetails []string
		wantCreates int
	}{
		{
			name:        "created",
			exists:      `{"data":{"clientExists":false}}`,
			body:        validClient,
			wantStatus:  http.StatusCreated,
			wantCreates: 1,
		},
		{
			name:        "dni and email taken",
			exists:      `{"data":{"clientExists":true}}`,
			body:        validClient,
			wantStatus:  http.StatusBadRequest,
			wantDetails: []string{"dni", "email"},
		},
		{
			name:        "invalid fields",
			exists:      `{"data":{"clientExists":false}}`,
			body:        `{"firstName":"Ana","email":"ana","dni":"12","locality":"7"}`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: []string{"lastName", "email", "dni"},
		},
		{
			name:       "malformed body",
			body:       `{"firstName":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, map[string]string{
				"ClientExists": tt.exists,
				"CreateClient": clientCreated,
			})
			router := newTestRouter(t, api)

			w := serve(router, http.MethodPost, "/api/clients", tt.body, testToken(t, "ana@example.com"))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCreates, api.count("CreateClient"))
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "/api/clients/9", w.Header().Get("Location"))
				assert.Equal(t, "9", decodeData[rental.Client](t, w).ID)
			}
			details := decode(t, w).Details
			for _, field := range tt.wantDetails {
				assert.Contains(t, details, field)
			}
		})
	}
}

func TestClientsHandler_Update(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"Client":       clientDetail,
		"ClientExists": `{"data":{"clientExists":true}}`,
		"UpdateClient": `{"data":{"updateClient":{"client":{"id":"1","firstName":"Ana María","lastName":"Diaz","email":"ana@example.com","dni":"30111222"}}}}`,
	})
	router := newTestRouter(t, api)

	body := `{"firstName":"Ana María","lastName":"Diaz","email":"ana@example.com","dni":"30111222","locality":"7"}`
	w := serve(router, http.MethodPut, "/api/clients/1", body, testToken(t, "ana@example.com"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ana María", decodeData[rental.Client](t, w).FirstName)
	assert.Equal(t, 0, api.count("ClientExists"), "unchanged dni and email are not checked")
	assert.Equal(t, 1, api.count("UpdateClient"))
}

func TestClientsHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantStatus int
	}{
		{name: "deleted", response: `{"data":{"deleteClient":{"success":true}}}`, wantStatus: http.StatusOK},
		{name: "refused", response: `{"data":{"deleteClient":{"success":false}}}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "business error", response: `{"errors":[{"message":"Error: Client has active contracts"}]}`, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, map[string]string{"DeleteClient": tt.response})
			router := newTestRouter(t, api)

			w := serve(router, http.MethodDelete, "/api/clients/1", "", testToken(t, "ana@example.com"))

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.name == "business error" {
				assert.Equal(t, "Client has active contracts", decode(t, w).Message)
			}
		})
	}
}
