package jobs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdir/bizdir/internal/business"
	"github.com/bizdir/bizdir/internal/shared"
)

type staticBusinessRepo struct {
	rows []business.Business
}

func (r *staticBusinessRepo) Create(_ context.Context, b business.Business) (*business.Business, error) {
	return &b, nil
}

func (r *staticBusinessRepo) Get(_ context.Context, _ int64) (*business.Business, error) {
	return nil, business.ErrNotFound
}

func (r *staticBusinessRepo) List(_ context.Context, _ shared.Pagination) ([]business.Business, int, error) {
	return r.rows, len(r.rows), nil
}

func (r *staticBusinessRepo) All(_ context.Context) ([]business.Business, error) {
	return r.rows, nil
}

func (r *staticBusinessRepo) Update(_ context.Context, _ int64, _ map[string]any) (*business.Business, error) {
	return nil, business.ErrNotFound
}

func (r *staticBusinessRepo) Delete(_ context.Context, _ int64) (bool, error) {
	return false, nil
}

func (r *staticBusinessRepo) Search(_ context.Context, _, _ string) ([]business.Business, error) {
	return []business.Business{}, nil
}

func TestDirectoryExportJobWritesWorkbook(t *testing.T) {
	repo := &staticBusinessRepo{rows: []business.Business{
		{ID: 1, Name: "Công ty Long Phát", TaxID: "0312345678", CreatedAt: time.Now()},
	}}
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	job := NewDirectoryExportJob(business.NewService(repo), dir, logger)

	task, err := NewDirectoryExportTask(DirectoryExportPayload{RequestedBy: "admin"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".xlsx", filepath.Ext(entries[0].Name()))

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDirectoryExportJobSkipsBadPayload(t *testing.T) {
	job := NewDirectoryExportJob(business.NewService(&staticBusinessRepo{}), t.TempDir(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	task := asynq.NewTask(TaskDirectoryExport, []byte("{"))
	err := job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
