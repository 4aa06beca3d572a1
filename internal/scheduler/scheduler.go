// Package scheduler keeps the results cache warm by refetching the default
// search on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobmatch/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrInvalidInterval = errors.New("refresh interval must be positive")

type Warmer interface {
	Warm(ctx context.Context, keywords string) error
}

type Scheduler struct {
	cron     *cron.Cron
	warmer   Warmer
	spec     string
	keywords []string
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a Scheduler that warms each keyword set every interval. With no
// keywords only the default search is warmed.
func New(w Warmer, interval time.Duration, log *zap.Logger, keywords ...string) (*Scheduler, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if len(keywords) == 0 {
		keywords = []string{""}
	}
	log = logger.OrNop(log).Named("scheduler")
	cl := cronLogger{log: log.Sugar()}

	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl))),
		warmer:   w,
		spec:     fmt.Sprintf("@every %s", interval),
		keywords: keywords,
		timeout:  interval,
		logger:   log,
	}, nil
}

// Start registers the job and runs one warm-up immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron started", zap.String("spec", s.spec))

	go s.RunOnce(ctx)

	return nil
}

// Stop waits for a running warm-up to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	s.logger.Info("cron stopped")
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	for _, kw := range s.keywords {
		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.warmer.Warm(runCtx, kw)
		cancel()
		if err != nil {
			s.logger.Warn("cache warm-up failed", zap.String("keywords", kw), zap.Error(err))
		}
	}
	s.logger.Info("cache warm-up complete", zap.Int("searches", len(s.keywords)), zap.Duration("took", time.Since(start)))
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
