//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/repository"
	"github.com/rentaldesk/rental-bff/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_rental_bff")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	svc := NewLoggingService(repository.NewLogsRepository(db))

	entry := (&model.LogEntry{Message: "User signed in", ActionType: model.ActionLogin, Identity: "ana@example.com"}).
		WithField("password", "hunter2")
	require.NoError(t, svc.CreateLog(ctx, entry))
	require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{
		{Message: "HTTP request", RequestID: "r1", Identity: "ana@example.com"},
		{Message: "HTTP request", RequestID: "r2", Level: "error"},
	}))

	logins, err := svc.QueryLogs(ctx, model.LogQueryOptions{ActionType: model.ActionLogin})
	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.Equal(t, "[REDACTED]", logins[0].Fields["password"])

	count, err := svc.CountLogs(ctx, model.LogQueryOptions{Identity: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
