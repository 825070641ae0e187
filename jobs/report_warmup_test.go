package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type stubWarmer struct {
	fy  int
	err error
}

func (s *stubWarmer) WarmFiscalYear(_ context.Context, fyBE int) error {
	s.fy = fyBE
	return s.err
}

func TestReportWarmupHandle(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewReportWarmupJob(warmer, nil, nil)

	task, err := NewReportWarmupTask(ReportWarmupPayload{FiscalYearBE: 2567})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 2567, warmer.fy)
}

func TestReportWarmupDefaultsToCurrentYear(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewReportWarmupJob(warmer, nil, nil)
	job.clock = func() time.Time {
		return time.Date(2023, time.October, 15, 0, 0, 0, 0, time.UTC)
	}

	task, err := NewReportWarmupTask(ReportWarmupPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 2567, warmer.fy)
}

func TestReportWarmupEmptyPayload(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewReportWarmupJob(warmer, nil, nil)
	job.clock = func() time.Time {
		return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	}

	require.NoError(t, job.Handle(context.Background(), asynq.NewTask(TaskReportWarmup, nil)))
	require.Equal(t, 2567, warmer.fy)
}

func TestReportWarmupMalformedPayloadSkipsRetry(t *testing.T) {
	job := NewReportWarmupJob(&stubWarmer{}, nil, nil)
	err := job.Handle(context.Background(), asynq.NewTask(TaskReportWarmup, []byte("{not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReportWarmupPropagatesWarmerError(t *testing.T) {
	boom := errors.New("render failed")
	job := NewReportWarmupJob(&stubWarmer{err: boom}, nil, nil)
	task, _ := NewReportWarmupTask(ReportWarmupPayload{FiscalYearBE: 2567})
	require.ErrorIs(t, job.Handle(context.Background(), task), boom)
}

func TestReportWarmupNotConfigured(t *testing.T) {
	var job *ReportWarmupJob
	require.Error(t, job.Handle(context.Background(), asynq.NewTask(TaskReportWarmup, nil)))
}
