//go:build !integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/service"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a rental GraphQL API answering by operation name.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	statuses  map[string]int
	calls     map[string]int
	variables map[string]map[string]any
	url       string
}

func newFakeAPI(t *testing.T, responses map[string]string) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		responses: responses,
		statuses:  map[string]int{},
		calls:     map[string]int{},
		variables: map[string]map[string]any{},
	}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)
	api.url = srv.URL
	return api
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var req graphql.Request
	_ = json.NewDecoder(r.Body).Decode(&req)

	a.mu.Lock()
	a.calls[req.OperationName]++
	a.variables[req.OperationName] = req.Variables
	body, ok := a.responses[req.OperationName]
	status := a.statuses[req.OperationName]
	a.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Error: unknown operation"}]}`))
		return
	}
	_, _ = w.Write([]byte(body))
}

func (a *fakeAPI) failWith(op string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statuses[op] = status
}

func (a *fakeAPI) count(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[op]
}

func (a *fakeAPI) vars(op string) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.variables[op]
}

// testRouterConfig wires the real rental services to api.
func testRouterConfig(t *testing.T, api *fakeAPI) RouterConfig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := querycache.NewMemoryStore(100, time.Hour, 4)
	t.Cleanup(store.Stop)
	cache := querycache.NewClient(store,
		querycache.WithDefaultStaleTime(time.Minute),
		querycache.WithDefaultRetry(0),
	)
	svc := rental.NewServices(graphql.NewClient(api.url), cache)
	quoter := contractform.NewQuoter(pricing.NewCalculatorService())

	return RouterConfig{
		RequestTimeout:  5 * time.Second,
		VerificationURL: DefaultVerificationURL,
		Rental:          svc,
		Contracts:       service.NewContractService(svc, quoter),
	}
}

func newTestRouter(t *testing.T, api *fakeAPI) *gin.Engine {
	t.Helper()
	return NewRouter(NewHealthHandler(), testRouterConfig(t, api))
}

// testToken returns a JWT for email that expires in an hour. The signature
// is never checked by the BFF.
func testToken(t *testing.T, email string) string {
	t.Helper()
	claims := session.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func serve(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &out), w.Body.String())
	return out
}

// mockDraftService is a testify mock of service.ContractDraftService.
type mockDraftService struct {
	mock.Mock
}

func (m *mockDraftService) Create(ctx context.Context, sess *session.Session, state contractform.State) (*model.ContractDraft, error) {
	args := m.Called(ctx, sess, state)
	draft, _ := args.Get(0).(*model.ContractDraft)
	return draft, args.Error(1)
}

func (m *mockDraftService) Get(ctx context.Context, sess *session.Session, id string) (*model.ContractDraft, error) {
	args := m.Called(ctx, sess, id)
	draft, _ := args.Get(0).(*model.ContractDraft)
	return draft, args.Error(1)
}

func (m *mockDraftService) List(ctx context.Context, sess *session.Session) ([]*model.ContractDraft, error) {
	args := m.Called(ctx, sess)
	drafts, _ := args.Get(0).([]*model.ContractDraft)
	return drafts, args.Error(1)
}

func (m *mockDraftService) Update(ctx context.Context, sess *session.Session, id string, in service.DraftUpdate) (*model.ContractDraft, error) {
	args := m.Called(ctx, sess, id, in)
	draft, _ := args.Get(0).(*model.ContractDraft)
	return draft, args.Error(1)
}

func (m *mockDraftService) Advance(ctx context.Context, sess *session.Session, id string) (*model.ContractDraft, error) {
	args := m.Called(ctx, sess, id)
	draft, _ := args.Get(0).(*model.ContractDraft)
	return draft, args.Error(1)
}

func (m *mockDraftService) Quote(ctx context.Context, sess *session.Session, id string) (pricing.Quote, error) {
	args := m.Called(ctx, sess, id)
	quote, _ := args.Get(0).(pricing.Quote)
	return quote, args.Error(1)
}

func (m *mockDraftService) Submit(ctx context.Context, sess *session.Session, id string) (rental.Contract, error) {
	args := m.Called(ctx, sess, id)
	contract, _ := args.Get(0).(rental.Contract)
	return contract, args.Error(1)
}

func (m *mockDraftService) Delete(ctx context.Context, sess *session.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}
