package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
)

func TestJobRepository(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewJobRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Job{Code: 3, Name: "Team Lead"}))
	require.NoError(t, repo.Create(ctx, &models.Job{Code: 1, Name: "Director"}))

	t.Run("duplicate code", func(t *testing.T) {
		err := repo.Create(ctx, &models.Job{Code: 1, Name: "Copycat"})
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})

	t.Run("list ordered by code", func(t *testing.T) {
		jobs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, 1, jobs[0].Code)
		assert.Equal(t, 3, jobs[1].Code)
	})

	t.Run("delete", func(t *testing.T) {
		jobs, err := repo.List(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, jobs[0].ID))
		assert.ErrorIs(t, repo.Delete(ctx, jobs[0].ID), domain.ErrNotFound)
	})
}

func TestDepartmentRepository(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewDepartmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Department{Name: "Sales"}))

	t.Run("duplicate name", func(t *testing.T) {
		err := repo.Create(ctx, &models.Department{Name: "Sales"})
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})

	t.Run("update", func(t *testing.T) {
		depts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, depts, 1)

		depts[0].Name = "Global Sales"
		require.NoError(t, repo.Update(ctx, depts[0]))

		got, err := repo.GetByID(ctx, depts[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Global Sales", got.Name)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoginLogRepository_DeleteOlderThan(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewLoginLogRepository(db)
	ctx := context.Background()

	old := time.Now().Add(-100 * 24 * time.Hour)
	recent := time.Now().Add(-time.Hour)

	require.NoError(t, repo.Create(ctx, &models.LoginLog{Email: "old@example.com", Succeeded: true, CreatedAt: old}))
	require.NoError(t, repo.Create(ctx, &models.LoginLog{Email: "new@example.com", Succeeded: false, CreatedAt: recent}))

	removed, err := repo.DeleteOlderThan(ctx, time.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&models.LoginLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
