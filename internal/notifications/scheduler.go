package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

type dispatcher interface {
	Dispatch(ctx context.Context, now time.Time) (*model.DispatchReport, error)
}

// Scheduler runs dispatch passes on a cron schedule.
type Scheduler struct {
	logger *zap.SugaredLogger
	sender dispatcher
	cron   *cron.Cron
}

func NewScheduler(logger *zap.SugaredLogger, sender dispatcher) *Scheduler {
	return &Scheduler{
		logger: logger,
		sender: sender,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (s *Scheduler) Start(ctx context.Context, spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	s.cron.Start()
	closer.Bind(func() {
		<-s.cron.Stop().Done()
	})

	s.logger.Infow("dispatch scheduler started", "schedule", spec)
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	report, err := s.sender.Dispatch(ctx, time.Now())
	switch {
	case errors.Is(err, model.ErrPassInProgress):
		s.logger.Debugw("dispatch pass skipped, another one is running")
	case err != nil:
		s.logger.Errorw("dispatch pass failed", "err", err)
	case report.Failed > 0 || report.Unmarked > 0:
		s.logger.Warnw("dispatch pass had failures", "failed", report.Failed, "sent_not_marked", report.Unmarked)
	}
}
