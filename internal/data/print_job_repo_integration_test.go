package data

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
	"github.com/mleczna-droga/printbridge/internal/testutil"
)

func TestPrintJobRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := testutil.SetupTestDB(t)
	start := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	clock := NewFixedTimeProvider(start)
	repo := NewPrintJobRepoWithTimeProvider(NewStaticDB(db), clock)
	ctx := context.Background()

	ok := &model.PrintJob{
		ID:          uuid.NewString(),
		PrinterName: testutil.StringPtr("Magazyn-A"),
		IP:          "10.0.0.5",
		JobType:     "label",
		PayloadKind: "record",
		Status:      model.PrintJobStatusSucceeded,
		State:       "closed",
		Bytes:       420,
		StartedAt:   start,
		FinishedAt:  start.Add(40 * time.Millisecond),
	}
	require.NoError(t, repo.Record(ctx, ok))

	failed := &model.PrintJob{
		ID:          uuid.NewString(),
		IP:          "10.0.0.9",
		JobType:     "label",
		PayloadKind: "raw",
		Status:      model.PrintJobStatusFailed,
		State:       "failed",
		Error:       testutil.StringPtr("connection refused"),
		StartedAt:   start.Add(time.Minute),
	}
	clock.AddTime(2 * time.Minute)
	require.NoError(t, repo.Record(ctx, failed))
	assert.Equal(t, start.Add(2*time.Minute), failed.FinishedAt)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, ok.ID)
		require.NoError(t, err)
		assert.Equal(t, ok.ID, got.ID)
		require.NotNil(t, got.PrinterName)
		assert.Equal(t, "Magazyn-A", *got.PrinterName)
		assert.Equal(t, 420, got.Bytes)
		assert.True(t, ok.StartedAt.Equal(got.StartedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("list newest first", func(t *testing.T) {
		jobs, err := repo.List(ctx, model.PrintJobListOptions{})
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, failed.ID, jobs[0].ID)
		assert.Equal(t, ok.ID, jobs[1].ID)
	})

	t.Run("list filters", func(t *testing.T) {
		status := model.PrintJobStatusFailed
		jobs, err := repo.List(ctx, model.PrintJobListOptions{Status: &status})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, failed.ID, jobs[0].ID)

		jobs, err = repo.List(ctx, model.PrintJobListOptions{PrinterName: "Magazyn-A"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, ok.ID, jobs[0].ID)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		dup := *ok
		err := repo.Record(ctx, &dup)
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
	})
}

func TestPrintJobRepo_Validation(t *testing.T) {
	repo := NewPrintJobRepo(NewStaticDB(nil))
	ctx := context.Background()

	require.ErrorIs(t, repo.Record(ctx, nil), ErrPrintJobRequired)
	require.ErrorIs(t, repo.Record(ctx, &model.PrintJob{}), ErrPrintJobIDRequired)

	err := repo.Record(ctx, &model.PrintJob{ID: uuid.NewString()})
	assert.True(t, apperrors.IsUnavailable(err))

	_, err = repo.List(ctx, model.PrintJobListOptions{})
	assert.True(t, apperrors.IsUnavailable(err))
}
