// Package scheduler runs the rolling recurrence expansion on a cron spec.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"rocketfist/internal/logger"
	"rocketfist/internal/metrics"
	"rocketfist/internal/schedule"

	"github.com/robfig/cron/v3"
)

const runTimeout = 5 * time.Minute

type Expander interface {
	ExpandAll(ctx context.Context) (*schedule.RunSummary, error)
}

type Scheduler struct {
	cron     *cron.Cron
	expander Expander
	spec     string
}

// New registers the expansion job under spec. An empty spec returns a
// scheduler whose Start and Stop do nothing.
func New(spec string, expander Expander) (*Scheduler, error) {
	s := &Scheduler{expander: expander, spec: spec}
	if spec == "" {
		return s, nil
	}

	l := cronLogger{}
	c := cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		s.Run(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid expansion schedule %q: %w", spec, err)
	}
	s.cron = c
	return s, nil
}

func (s *Scheduler) Enabled() bool {
	return s.cron != nil
}

func (s *Scheduler) Start() {
	if s.cron == nil {
		logger.Info("expansion job disabled")
		return
	}
	s.cron.Start()
	logger.Info("expansion job scheduled", "schedule", s.spec)
}

// Stop prevents new runs and waits for a running one until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run performs one expansion pass over every expandable class.
func (s *Scheduler) Run(ctx context.Context) {
	start := time.Now()
	summary, err := s.expander.ExpandAll(ctx)
	if err != nil {
		metrics.RecordExpansionRun("failed")
		logger.Error("expansion run failed", "error", err, "duration", time.Since(start).String())
		return
	}

	status := "success"
	if summary.Failed > 0 {
		status = "partial"
	}
	metrics.RecordExpansionRun(status)
	logger.Info("expansion run finished",
		"classes", summary.Classes,
		"created", summary.Created,
		"existing", summary.Existing,
		"failed", summary.Failed,
		"duration", time.Since(start).String(),
	)
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
