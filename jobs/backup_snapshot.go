package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/banchee-erp/banchee-erp/internal/jobs"
)

// ArchiveWriter streams a full backup archive.
type ArchiveWriter interface {
	WriteArchive(ctx context.Context, w io.Writer) error
}

// BackupSnapshotJob writes nightly backup archives into a local directory
// and prunes old ones.
type BackupSnapshotJob struct {
	Backup  ArchiveWriter
	Dir     string
	Keep    int
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewBackupSnapshotJob wires dependencies for the snapshot handler. keep
// bounds how many archives stay on disk, oldest pruned first.
func NewBackupSnapshotJob(backup ArchiveWriter, dir string, keep int, logger *slog.Logger, metrics *jobmetrics.Metrics) *BackupSnapshotJob {
	if keep < 1 {
		keep = 7
	}
	return &BackupSnapshotJob{
		Backup:  backup,
		Dir:     dir,
		Keep:    keep,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes backup snapshot tasks.
func (j *BackupSnapshotJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Backup == nil || j.Dir == "" {
		return errors.New("backup snapshot: handler not configured")
	}
	metrics := j.Metrics
	if metrics == nil {
		metrics = defaultJobMetrics
	}
	tracker := metrics.Track("backup_snapshot")
	return tracker.End(j.run(ctx))
}

func (j *BackupSnapshotJob) run(ctx context.Context) error {
	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return fmt.Errorf("backup snapshot: ensure dir: %w", err)
	}
	name := fmt.Sprintf("banchee-backup-%s.zip", j.clock().Format("20060102-150405"))
	path := filepath.Join(j.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("backup snapshot: create %s: %w", path, err)
	}
	if err := j.Backup.WriteArchive(ctx, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("backup snapshot: close %s: %w", path, err)
	}
	if j.Logger != nil {
		j.Logger.Info("backup snapshot written", slog.String("path", path))
	}
	return j.prune()
}

// prune removes the oldest archives beyond the retention count. Timestamped
// names sort chronologically.
func (j *BackupSnapshotJob) prune() error {
	matches, err := filepath.Glob(filepath.Join(j.Dir, "banchee-backup-*.zip"))
	if err != nil {
		return fmt.Errorf("backup snapshot: prune: %w", err)
	}
	if len(matches) <= j.Keep {
		return nil
	}
	for _, stale := range matches[:len(matches)-j.Keep] {
		if err := os.Remove(stale); err != nil && j.Logger != nil {
			j.Logger.Warn("prune backup", slog.String("path", stale), slog.Any("error", err))
		}
	}
	return nil
}
