package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/banchee-erp/banchee-erp/internal/jobs"
	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// ReportWarmer pre-renders the report PDFs for one fiscal year.
type ReportWarmer interface {
	WarmFiscalYear(ctx context.Context, fyBE int) error
}

// ReportWarmupJob keeps the current fiscal year's PDF cache hot.
type ReportWarmupJob struct {
	Warmer  ReportWarmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(warmer ReportWarmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportWarmupJob {
	return &ReportWarmupJob{
		Warmer:  warmer,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks. A zero fiscal year in the payload
// means the fiscal year of the current date.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Warmer == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	fy := payload.FiscalYearBE
	if fy == 0 {
		fy = ledger.FiscalYearOf(j.clock().Format("2006-01-02"))
	}

	metrics := j.Metrics
	if metrics == nil {
		metrics = defaultJobMetrics
	}
	tracker := metrics.Track("report_warmup")

	err := j.Warmer.WarmFiscalYear(ctx, fy)
	if err != nil && j.Logger != nil {
		j.Logger.Error("report warmup", slog.Int("fiscal_year", fy), slog.Any("error", err))
	} else if j.Logger != nil {
		j.Logger.Info("report warmup done", slog.Int("fiscal_year", fy))
	}
	return tracker.End(err)
}
