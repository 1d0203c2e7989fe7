package repository

import (
	"context"

	"github.com/rentaldesk/rental-bff/internal/domain/model"
)

// LogsRepositoryInterface stores request and audit logs.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// ContractDraftRepositoryInterface stores contract wizard drafts.
type ContractDraftRepositoryInterface interface {
	Create(ctx context.Context, draft *model.ContractDraft) error
	Get(ctx context.Context, id, owner string) (*model.ContractDraft, error)
	Update(ctx context.Context, draft *model.ContractDraft) error
	Delete(ctx context.Context, id, owner string) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]*model.ContractDraft, error)
}

var (
	_ LogsRepositoryInterface          = (*LogsRepository)(nil)
	_ LogsRepositoryInterface          = (*LogsRepositoryWithCircuitBreaker)(nil)
	_ ContractDraftRepositoryInterface = (*ContractDraftRepository)(nil)
	_ ContractDraftRepositoryInterface = (*ContractDraftRepositoryWithCircuitBreaker)(nil)
)
