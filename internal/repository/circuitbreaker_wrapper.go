package repository

import (
	"context"
	"errors"

	"github.com/rentaldesk/rental-bff/internal/circuitbreaker"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
)

// IsStoreFailure reports whether err means MongoDB itself is failing, as
// opposed to a missing or stale draft.
func IsStoreFailure(err error) bool {
	switch {
	case errors.Is(err, ErrDraftNotFound), errors.Is(err, ErrDraftConflict):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with a circuit breaker.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores one entry. Logging is best effort, so an open circuit drops
// the entry without error.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores a batch. An open circuit drops the batch without error.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	var result []*model.LogEntry
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count counts log entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// ContractDraftRepositoryWithCircuitBreaker wraps a drafts repository with a
// circuit breaker. Callers see circuitbreaker.ErrCircuitOpen while MongoDB
// is considered down.
type ContractDraftRepositoryWithCircuitBreaker struct {
	repo           ContractDraftRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewContractDraftRepositoryWithCircuitBreaker wraps repo with cb. cb should
// be configured with IsStoreFailure so missing drafts do not open it.
func NewContractDraftRepositoryWithCircuitBreaker(repo ContractDraftRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ContractDraftRepositoryWithCircuitBreaker {
	return &ContractDraftRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create inserts a draft.
func (r *ContractDraftRepositoryWithCircuitBreaker) Create(ctx context.Context, draft *model.ContractDraft) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, draft)
	})
}

// Get returns a draft of owner.
func (r *ContractDraftRepositoryWithCircuitBreaker) Get(ctx context.Context, id, owner string) (*model.ContractDraft, error) {
	var result *model.ContractDraft
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, id, owner)
		return cbErr
	})
	return result, err
}

// Update saves a draft.
func (r *ContractDraftRepositoryWithCircuitBreaker) Update(ctx context.Context, draft *model.ContractDraft) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Update(ctx, draft)
	})
}

// Delete removes a draft of owner.
func (r *ContractDraftRepositoryWithCircuitBreaker) Delete(ctx context.Context, id, owner string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id, owner)
	})
}

// ListByOwner lists the drafts of owner.
func (r *ContractDraftRepositoryWithCircuitBreaker) ListByOwner(ctx context.Context, owner string, limit int) ([]*model.ContractDraft, error) {
	var result []*model.ContractDraft
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListByOwner(ctx, owner, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ContractDraftRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
