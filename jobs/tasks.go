package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDirectoryExport snapshots the business directory to an XLSX
	// file on disk.
	TaskDirectoryExport = "directory:export"
)

// DirectoryExportPayload describes an export request.
type DirectoryExportPayload struct {
	// RequestedBy records who triggered the export: an admin username
	// or "scheduler" for the nightly run.
	RequestedBy string `json:"requested_by"`
}

// NewDirectoryExportTask constructs an Asynq task.
func NewDirectoryExportTask(payload DirectoryExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDirectoryExport, data), nil
}
