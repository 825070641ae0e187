package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup pre-renders the report PDFs for one fiscal year.
	TaskReportWarmup = "reports:warmup"
	// TaskBackupSnapshot writes a full backup archive to disk.
	TaskBackupSnapshot = "backup:snapshot"
)

// ReportWarmupPayload names the fiscal year to pre-render.
type ReportWarmupPayload struct {
	FiscalYearBE int `json:"fiscalYearBE"`
}

// NewReportWarmupTask constructs an Asynq task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// NewBackupSnapshotTask constructs an Asynq task with an empty payload.
// The destination directory comes from worker configuration.
func NewBackupSnapshotTask() *asynq.Task {
	return asynq.NewTask(TaskBackupSnapshot, nil)
}
