package usecase

import (
	"context"
	"fmt"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/matching"
	"jobmatch/internal/domain/profile"
	"jobmatch/internal/infrastructure/source"
	"jobmatch/internal/logger"
	"jobmatch/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200

	DefaultFetchTimeout = 30 * time.Second
)

type MatchParams struct {
	Keywords string
	// Nil means no filtering and score-descending order.
	Filters *matching.Filters
	// Page and PageSize both zero returns every match on a single page.
	Page     int
	PageSize int
	// Refresh skips the cached snapshot and refetches from the sources.
	Refresh bool
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type MatchResult struct {
	Jobs       []job.MatchedJob
	TotalJobs  int
	Profile    profile.Profile
	Pagination Pagination
	CachedAt   time.Time
}

type MatchUsecase interface {
	Matches(ctx context.Context, params MatchParams) (MatchResult, error)
	Profile() profile.Profile
	Warm(ctx context.Context, keywords string) error
}

type Matches struct {
	jobs    service.JobAggregator
	cache   SearchCache
	ttl     time.Duration
	engine  *matching.Engine
	profile profile.Profile
	now     func() time.Time
	timeout time.Duration
	logger  *zap.Logger

	fetches singleflight.Group
}

type MatchesOptions struct {
	Cache    SearchCache
	CacheTTL time.Duration
	Engine   *matching.Engine
	Now      func() time.Time
	// FetchTimeout bounds a shared upstream fetch independently of the
	// callers waiting on it.
	FetchTimeout time.Duration
}

func NewMatchUsecase(jobs service.JobAggregator, prof profile.Profile, opts MatchesOptions, log *zap.Logger) *Matches {
	if opts.Engine == nil {
		opts.Engine = matching.DefaultEngine()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Matches{
		jobs:    jobs,
		cache:   opts.Cache,
		ttl:     opts.CacheTTL,
		engine:  opts.Engine,
		profile: prof,
		now:     opts.Now,
		timeout: opts.FetchTimeout,
		logger:  logger.OrNop(log),
	}
}

func (u *Matches) Profile() profile.Profile {
	return u.profile
}

func (u *Matches) Matches(ctx context.Context, params MatchParams) (MatchResult, error) {
	page, size, err := normalizePaging(params.Page, params.PageSize)
	if err != nil {
		return MatchResult{}, err
	}
	if err := validateFilters(params.Filters); err != nil {
		return MatchResult{}, err
	}

	snap, err := u.snapshot(ctx, params.Keywords, params.Refresh)
	if err != nil {
		return MatchResult{}, err
	}

	matched := u.engine.MatchJobs(snap.Jobs, u.profile, params.Filters)
	total := len(matched)

	res := MatchResult{
		Jobs:      matched,
		TotalJobs: total,
		Profile:   u.profile,
		Pagination: Pagination{
			Page:       page,
			PageSize:   total,
			TotalPages: min(total, 1),
		},
		CachedAt: time.UnixMilli(snap.FetchedAt),
	}
	if size > 0 {
		res.Jobs = paginate(matched, page, size)
		res.Pagination.PageSize = size
		res.Pagination.TotalPages = (total + size - 1) / size
	}
	return res, nil
}

// Warm refetches the snapshot for keywords regardless of the cache state.
func (u *Matches) Warm(ctx context.Context, keywords string) error {
	_, err := u.snapshot(ctx, keywords, true)
	return err
}

func (u *Matches) snapshot(ctx context.Context, keywords string, refresh bool) (Snapshot, error) {
	q := source.Query{Keywords: keywords}.Normalized()
	key := JobsSnapshotKey(q.Keywords)

	if !refresh && u.cache != nil {
		var snap Snapshot
		hit, err := u.cache.GetJSON(ctx, key, &snap)
		if err != nil {
			u.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit && err == nil {
			u.logger.Debug("cache hit", zap.String("key", key), zap.Int("jobs", len(snap.Jobs)))
			return snap, nil
		}
	}

	// Concurrent misses for the same keywords share one upstream fetch. It
	// runs detached from any single caller so one cancellation does not fail
	// the others.
	ch := u.fetches.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
		defer cancel()

		jobs, err := u.jobs.Search(fctx, q)
		if err != nil {
			return Snapshot{}, err
		}
		snap := Snapshot{Jobs: jobs, FetchedAt: u.now().UnixMilli()}
		if u.cache != nil {
			if err := u.cache.SetJSON(fctx, key, snap, u.ttl); err != nil {
				u.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return snap, nil
	})

	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrSourcesUnavailable, r.Err)
		}
		return r.Val.(Snapshot), nil
	}
}

// normalizePaging returns size 0 when neither page nor size was requested.
func normalizePaging(page, size int) (int, int, error) {
	if page == 0 && size == 0 {
		return DefaultPage, 0, nil
	}
	if page == 0 {
		page = DefaultPage
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be >= 1", ErrInvalidInput)
	}
	if size < 1 || size > MaxPageSize {
		return 0, 0, fmt.Errorf("%w: pageSize must be between 1 and %d", ErrInvalidInput, MaxPageSize)
	}
	return page, size, nil
}

func validateFilters(f *matching.Filters) error {
	if f == nil {
		return nil
	}
	if f.MinMatchScore != nil && *f.MinMatchScore < 0 {
		return fmt.Errorf("%w: minMatchScore must be non-negative", ErrInvalidInput)
	}
	switch f.SortBy {
	case "", matching.SortByScore, matching.SortByDate, matching.SortByLocation:
	default:
		return fmt.Errorf("%w: unknown sortBy %q", ErrInvalidInput, f.SortBy)
	}
	switch f.SortOrder {
	case "", matching.SortAsc, matching.SortDesc:
	default:
		return fmt.Errorf("%w: unknown sortOrder %q", ErrInvalidInput, f.SortOrder)
	}
	return nil
}

func paginate(items []job.MatchedJob, page, size int) []job.MatchedJob {
	start := (page - 1) * size
	if start >= len(items) {
		return []job.MatchedJob{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

var _ MatchUsecase = (*Matches)(nil)
