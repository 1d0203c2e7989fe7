package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rentaldesk/rental-bff/internal/circuitbreaker"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogs struct {
	err   error
	calls int
}

func (s *stubLogs) Create(context.Context, *model.LogEntry) error { s.calls++; return s.err }
func (s *stubLogs) CreateMany(context.Context, []*model.LogEntry) error {
	s.calls++
	return s.err
}
func (s *stubLogs) Query(context.Context, model.LogQueryOptions) ([]*model.LogEntry, error) {
	s.calls++
	return []*model.LogEntry{{Message: "hello"}}, s.err
}
func (s *stubLogs) Count(context.Context, model.LogQueryOptions) (int64, error) {
	s.calls++
	return 7, s.err
}

type stubDrafts struct {
	err   error
	calls int
}

func (s *stubDrafts) Create(context.Context, *model.ContractDraft) error { s.calls++; return s.err }
func (s *stubDrafts) Get(_ context.Context, id, _ string) (*model.ContractDraft, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.ContractDraft{ID: id}, nil
}
func (s *stubDrafts) Update(context.Context, *model.ContractDraft) error { s.calls++; return s.err }
func (s *stubDrafts) Delete(context.Context, string, string) error     { s.calls++; return s.err }
func (s *stubDrafts) ListByOwner(context.Context, string, int) ([]*model.ContractDraft, error) {
	s.calls++
	return nil, s.err
}

func newTestBreaker(isFailure func(error) bool) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "test",
		IsFailure:        isFailure,
	})
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	stub := &stubLogs{err: errors.New("connection refused")}
	repo := NewLogsRepositoryWithCircuitBreaker(stub, newTestBreaker(nil))

	err := repo.Create(ctx, &model.LogEntry{})
	assert.Error(t, err, "the failure that opens the circuit is reported")
	require.True(t, repo.GetCircuitBreaker().IsOpen())

	assert.NoError(t, repo.Create(ctx, &model.LogEntry{}), "writes are dropped while open")
	assert.NoError(t, repo.CreateMany(ctx, []*model.LogEntry{{}}))
	_, err = repo.Query(ctx, model.LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen, "reads are not hidden")
	_, err = repo.Count(ctx, model.LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 1, stub.calls)
}

func TestLogsRepositoryWithCircuitBreaker_PassesResults(t *testing.T) {
	repo := NewLogsRepositoryWithCircuitBreaker(&stubLogs{}, newTestBreaker(nil))

	entries, err := repo.Query(context.Background(), model.LogQueryOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	n, err := repo.Count(context.Background(), model.LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestContractDraftRepositoryWithCircuitBreaker(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantOpen bool
	}{
		{name: "not found does not open", err: ErrDraftNotFound},
		{name: "conflict does not open", err: ErrDraftConflict},
		{name: "store failure opens", err: errors.New("server selection timeout"), wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubDrafts{err: tt.err}
			repo := NewContractDraftRepositoryWithCircuitBreaker(stub, newTestBreaker(IsStoreFailure))

			_, err := repo.Get(context.Background(), "d1", "ana@example.com")

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantOpen, repo.GetCircuitBreaker().IsOpen())
		})
	}
}

func TestContractDraftRepositoryWithCircuitBreaker_Open(t *testing.T) {
	ctx := context.Background()
	stub := &stubDrafts{err: errors.New("down")}
	repo := NewContractDraftRepositoryWithCircuitBreaker(stub, newTestBreaker(IsStoreFailure))
	_ = repo.Create(ctx, &model.ContractDraft{})

	assert.ErrorIs(t, repo.Update(ctx, &model.ContractDraft{}), circuitbreaker.ErrCircuitOpen)
	assert.ErrorIs(t, repo.Delete(ctx, "d1", "o"), circuitbreaker.ErrCircuitOpen)
	_, err := repo.ListByOwner(ctx, "o", 10)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 1, stub.calls)
}

func TestIsStoreFailure(t *testing.T) {
	assert.False(t, IsStoreFailure(ErrDraftNotFound))
	assert.False(t, IsStoreFailure(ErrDraftConflict))
	assert.False(t, IsStoreFailure(context.Canceled))
	assert.True(t, IsStoreFailure(errors.New("socket closed")))
}
