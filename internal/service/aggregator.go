package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/infrastructure/source"
	"jobmatch/internal/logger"

	"go.uber.org/zap"
)

const defaultSourceTimeout = 20 * time.Second

var ErrAllSourcesFailed = errors.New("all job sources failed")

type JobAggregator interface {
	Search(ctx context.Context, q source.Query) ([]job.Posting, error)
}

type JobSource interface {
	Name() string
	Search(ctx context.Context, q source.Query) ([]job.Posting, error)
}

// DefaultJobAggregator queries every source concurrently. One failing source
// never hides the others.
type DefaultJobAggregator struct {
	sources []JobSource
	timeout time.Duration
	logger  *zap.Logger
}

func NewJobAggregator(log *zap.Logger, timeout time.Duration, sources ...JobSource) *DefaultJobAggregator {
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}
	return &DefaultJobAggregator{sources: sources, timeout: timeout, logger: logger.OrNop(log)}
}

func (s *DefaultJobAggregator) SourceNames() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, src.Name())
	}
	return out
}

func (s *DefaultJobAggregator) Search(ctx context.Context, q source.Query) ([]job.Posting, error) {
	if s == nil || len(s.sources) == 0 {
		return []job.Posting{}, nil
	}

	type res struct {
		jobs []job.Posting
		err  error
		took time.Duration
	}

	results := make([]res, len(s.sources))
	wg := sync.WaitGroup{}

	for i, src := range s.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx2, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			start := time.Now()
			jobs, err := src.Search(ctx2, q)
			results[i] = res{jobs: jobs, err: err, took: time.Since(start)}
		}()
	}

	wg.Wait()

	all := make([]job.Posting, 0)
	var okCount int
	var errs []error

	for i, r := range results {
		name := s.sources[i].Name()
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, r.err))
			s.logger.Warn("source failed",
				zap.String(logger.FieldSource, name),
				zap.Duration("took", r.took),
				zap.Error(r.err),
			)
			continue
		}
		okCount++
		s.logger.Info("source fetched",
			zap.String(logger.FieldSource, name),
			zap.Int("jobs", len(r.jobs)),
			zap.Duration("took", r.took),
		)
		all = append(all, r.jobs...)
	}

	if okCount == 0 {
		return nil, errors.Join(append([]error{ErrAllSourcesFailed}, errs...)...)
	}

	return dedupeByID(all), nil
}

// dedupeByID keeps the first posting for each ID, in input order.
func dedupeByID(in []job.Posting) []job.Posting {
	seen := make(map[string]struct{}, len(in))
	out := make([]job.Posting, 0, len(in))
	for _, j := range in {
		id := strings.TrimSpace(j.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, j)
	}
	return out
}

var _ JobAggregator = (*DefaultJobAggregator)(nil)
