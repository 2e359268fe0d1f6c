package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
)

func TestNotificationRepository_PruneKeepsNewest(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		n := &models.Notification{
			UserID:    1,
			Title:     fmt.Sprintf("notification %d", i+1),
			CreatedBy: 99,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, n))
	}

	require.NoError(t, repo.Prune(ctx, 1, models.MaxNotificationsPerUser))

	remaining, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 5)

	// Newest first, the two oldest gone.
	assert.Equal(t, "notification 7", remaining[0].Title)
	assert.Equal(t, "notification 3", remaining[4].Title)
}

func TestNotificationRepository_PruneTieBreaksByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	ctx := context.Background()

	// All rows share one timestamp so ranking falls through to id.
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		n := &models.Notification{
			UserID:    1,
			Title:     fmt.Sprintf("n%d", i+1),
			CreatedBy: 99,
			CreatedAt: ts,
		}
		require.NoError(t, repo.Create(ctx, n))
	}

	require.NoError(t, repo.Prune(ctx, 1, models.MaxNotificationsPerUser))

	remaining, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 5)
	assert.Equal(t, "n7", remaining[0].Title)
	assert.Equal(t, "n3", remaining[4].Title)
}

func TestNotificationRepository_PruneScopedToUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 1, Title: "a", CreatedBy: 99}))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 2, Title: "b", CreatedBy: 99}))
	}

	require.NoError(t, repo.Prune(ctx, 1, models.MaxNotificationsPerUser))

	count1, err := repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	count2, err := repo.CountByUser(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(5), count1)
	assert.Equal(t, int64(3), count2)
}

func TestNotificationRepository_PruneUnderLimitIsNoop(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 1, Title: "n", CreatedBy: 99}))
	}

	require.NoError(t, repo.Prune(ctx, 1, models.MaxNotificationsPerUser))

	count, err := repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	ctx := context.Background()

	n := &models.Notification{UserID: 1, Title: "hello", CreatedBy: 99}
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkRead(ctx, 1, n.ID))

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
	assert.NotNil(t, list[0].ReadAt)

	// Another user cannot mark this row.
	assert.ErrorIs(t, repo.MarkRead(ctx, 2, n.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.MarkRead(ctx, 1, 9999), domain.ErrNotFound)
}
