package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/bizdir/bizdir/internal/business"
)

// DirectoryExportJob writes XLSX snapshots of the business directory to
// the export directory.
type DirectoryExportJob struct {
	service *business.Service
	dir     string
	logger  *slog.Logger
}

// NewDirectoryExportJob constructs the job.
func NewDirectoryExportJob(service *business.Service, dir string, logger *slog.Logger) *DirectoryExportJob {
	return &DirectoryExportJob{service: service, dir: dir, logger: logger}
}

// Handle processes TaskDirectoryExport tasks.
func (j *DirectoryExportJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload DirectoryExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	data, err := j.service.ExportXLSX(ctx)
	if err != nil {
		return fmt.Errorf("jobs: export directory: %w", err)
	}

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("jobs: create export dir: %w", err)
	}
	name := fmt.Sprintf("businesses-%s.xlsx", time.Now().Format("20060102-150405"))
	path := filepath.Join(j.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("jobs: write export: %w", err)
	}

	j.logger.Info("directory export written",
		slog.String("path", path),
		slog.String("requested_by", payload.RequestedBy))
	return nil
}
