// Package service holds the BFF's own application services: log storage and
// the contract wizard drafts.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/repository"
)

const maxLogQueryLimit = 500

// redactedKeys are field names whose values never reach the log store.
var redactedKeys = []string{"password", "token", "authorization", "cookie"}

// LoggingService stores and reads request and audit logs.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements LoggingService over a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a logging service.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

// CreateLog stores one entry.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	prepare(entry)
	return s.repo.Create(ctx, entry)
}

// CreateLogs stores entries in bulk.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		prepare(entry)
	}
	return s.repo.CreateMany(ctx, entries)
}

// QueryLogs returns matching entries, newest first. The limit is capped.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if opts.Limit <= 0 || opts.Limit > maxLogQueryLimit {
		opts.Limit = maxLogQueryLimit
	}
	docs, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = *doc
	}
	return entries, nil
}

// CountLogs counts matching entries.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}

// prepare fills defaults and redacts credentials from Fields.
func prepare(entry *model.LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Level == "" {
		entry.Level = "info"
	}
	for k := range entry.Fields {
		if isRedacted(k) {
			entry.Fields[k] = "[REDACTED]"
		}
	}
}

func isRedacted(key string) bool {
	key = strings.ToLower(key)
	for _, r := range redactedKeys {
		if strings.Contains(key, r) {
			return true
		}
	}
	return false
}
