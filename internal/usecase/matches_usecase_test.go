package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/matching"
	"jobmatch/internal/domain/profile"
	"jobmatch/internal/infrastructure/cache"
	"jobmatch/internal/infrastructure/source"
	"jobmatch/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAggregator struct {
	calls   atomic.Int32
	jobs    []job.Posting
	err     error
	release chan struct{}
	queries []string
	mu      sync.Mutex
}

func (f *fakeAggregator) Search(ctx context.Context, q source.Query) ([]job.Posting, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, q.Keywords)
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

type brokenCache struct{}

func (brokenCache) GetJSON(context.Context, string, any) (bool, error) {
	return false, errors.New("cache down")
}

func (brokenCache) SetJSON(context.Context, string, any, time.Duration) error {
	return errors.New("cache down")
}

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func testPostings() []job.Posting {
	return []job.Posting{
		{ID: "j1", Title: "Développeur React", Description: "React TypeScript", Location: "75 - Paris", ContractType: "CDI"},
		{ID: "j2", Title: "Développeur Python", Description: "Python Django PostgreSQL Docker", Location: "92 - Nanterre", ContractType: "CDD"},
		{ID: "j3", Title: "Développeur Java", Description: "Java Spring Boot", Location: "92 - Boulogne-Billancourt"},
		{ID: "acc", Title: "Comptable Senior", Description: "React TypeScript Python Docker"},
	}
}

func testProfile() profile.Profile {
	return profile.Profile{
		Name:   "Test",
		Skills: []string{"React", "TypeScript", "Python", "PostgreSQL", "Docker"},
	}
}

func newTestUsecase(agg service.JobAggregator, c SearchCache) *Matches {
	return NewMatchUsecase(agg, testProfile(), MatchesOptions{
		Cache:    c,
		CacheTTL: time.Minute,
		Now:      func() time.Time { return fixedNow },
	}, zap.NewNop())
}

func matchedIDs(items []job.MatchedJob) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestMatches_DefaultsAndCachedAt(t *testing.T) {
	agg := &fakeAggregator{jobs: testPostings()}
	uc := newTestUsecase(agg, cache.NewMemory())

	res, err := uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)

	assert.Equal(t, []string{"j2", "j1", "j3"}, matchedIDs(res.Jobs))
	assert.Equal(t, 3, res.TotalJobs)
	assert.Equal(t, Pagination{Page: 1, PageSize: 3, TotalPages: 1}, res.Pagination)
	assert.Equal(t, fixedNow.UnixMilli(), res.CachedAt.UnixMilli())
	assert.Equal(t, "Test", res.Profile.Name)
}

func TestMatches_CacheHitSkipsSources(t *testing.T) {
	ctx := context.Background()
	agg := &fakeAggregator{jobs: testPostings()}
	uc := newTestUsecase(agg, cache.NewMemory())

	_, err := uc.Matches(ctx, MatchParams{Keywords: "React  Node"})
	require.NoError(t, err)
	_, err = uc.Matches(ctx, MatchParams{Keywords: "react node"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), agg.calls.Load())
	assert.Equal(t, []string{"React Node"}, agg.queries)
}

func TestMatches_RefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	agg := &fakeAggregator{jobs: testPostings()}
	uc := newTestUsecase(agg, cache.NewMemory())

	_, err := uc.Matches(ctx, MatchParams{})
	require.NoError(t, err)
	_, err = uc.Matches(ctx, MatchParams{Refresh: true})
	require.NoError(t, err)

	assert.Equal(t, int32(2), agg.calls.Load())
}

func TestMatches_WarmFillsCache(t *testing.T) {
	ctx := context.Background()
	agg := &fakeAggregator{jobs: testPostings()}
	uc := newTestUsecase(agg, cache.NewMemory())

	require.NoError(t, uc.Warm(ctx, ""))
	_, err := uc.Matches(ctx, MatchParams{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), agg.calls.Load())
}

func TestMatches_Pagination(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeAggregator{jobs: testPostings()}, cache.NewMemory())

	first, err := uc.Matches(ctx, MatchParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"j2", "j1"}, matchedIDs(first.Jobs))
	assert.Equal(t, 3, first.TotalJobs)
	assert.Equal(t, 2, first.Pagination.TotalPages)

	second, err := uc.Matches(ctx, MatchParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"j3"}, matchedIDs(second.Jobs))

	beyond, err := uc.Matches(ctx, MatchParams{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Jobs)
	assert.NotNil(t, beyond.Jobs)
	assert.Equal(t, 3, beyond.TotalJobs)
}

func TestMatches_PageOnlyUsesDefaultSize(t *testing.T) {
	uc := newTestUsecase(&fakeAggregator{jobs: testPostings()}, cache.NewMemory())

	res, err := uc.Matches(context.Background(), MatchParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, res.Pagination.PageSize)
	assert.Len(t, res.Jobs, 3)
}

func TestMatches_UnpagedReturnsEverything(t *testing.T) {
	postings := make([]job.Posting, 0, 60)
	for i := 0; i < 60; i++ {
		postings = append(postings, job.Posting{
			ID:          fmt.Sprintf("j%d", i),
			Title:       "Développeur React",
			Description: "React TypeScript",
		})
	}
	uc := newTestUsecase(&fakeAggregator{jobs: postings}, cache.NewMemory())

	res, err := uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)
	assert.Len(t, res.Jobs, 60)
	assert.Equal(t, Pagination{Page: 1, PageSize: 60, TotalPages: 1}, res.Pagination)
}

func TestMatches_FiltersForwarded(t *testing.T) {
	minScore := 71
	uc := newTestUsecase(&fakeAggregator{jobs: testPostings()}, cache.NewMemory())

	res, err := uc.Matches(context.Background(), MatchParams{
		Filters: &matching.Filters{MinMatchScore: &minScore},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"j2"}, matchedIDs(res.Jobs))
}

func TestMatches_EmptyResultHasZeroPages(t *testing.T) {
	uc := newTestUsecase(&fakeAggregator{jobs: []job.Posting{}}, cache.NewMemory())

	res, err := uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalJobs)
	assert.Equal(t, 0, res.Pagination.TotalPages)
}

func TestMatches_InvalidInput(t *testing.T) {
	negative := -1
	cases := map[string]MatchParams{
		"negative page":     {Page: -1},
		"negative size":     {PageSize: -5},
		"size too large":    {PageSize: MaxPageSize + 1},
		"negative minScore": {Filters: &matching.Filters{MinMatchScore: &negative}},
		"unknown sortBy":    {Filters: &matching.Filters{SortBy: "salary"}},
		"unknown sortOrder": {Filters: &matching.Filters{SortOrder: "sideways"}},
	}

	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			agg := &fakeAggregator{jobs: testPostings()}
			uc := newTestUsecase(agg, cache.NewMemory())

			_, err := uc.Matches(context.Background(), params)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, int32(0), agg.calls.Load())
		})
	}
}

func TestMatches_SourceFailure(t *testing.T) {
	agg := &fakeAggregator{err: service.ErrAllSourcesFailed}
	uc := newTestUsecase(agg, cache.NewMemory())

	_, err := uc.Matches(context.Background(), MatchParams{})
	assert.ErrorIs(t, err, ErrSourcesUnavailable)
	assert.ErrorIs(t, err, service.ErrAllSourcesFailed)

	// Failures are not cached.
	agg.err = nil
	agg.jobs = testPostings()
	res, err := uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalJobs)
}

func TestMatches_CacheErrorsAreNotFatal(t *testing.T) {
	agg := &fakeAggregator{jobs: testPostings()}
	uc := newTestUsecase(agg, brokenCache{})

	res, err := uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalJobs)
}

func TestMatches_NoCache(t *testing.T) {
	agg := &fakeAggregator{jobs: testPostings()}
	uc := newTestUsecase(agg, nil)

	_, err := uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)
	_, err = uc.Matches(context.Background(), MatchParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), agg.calls.Load())
}

func TestMatches_ConcurrentMissesShareOneFetch(t *testing.T) {
	agg := &fakeAggregator{jobs: testPostings(), release: make(chan struct{})}
	uc := newTestUsecase(agg, cache.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Matches(context.Background(), MatchParams{})
			assert.NoError(t, err)
			assert.Equal(t, 3, res.TotalJobs)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(agg.release)
	wg.Wait()

	assert.Equal(t, int32(1), agg.calls.Load())
}

func TestMatches_CancelledWaiterDoesNotFailOthers(t *testing.T) {
	agg := &fakeAggregator{jobs: testPostings(), release: make(chan struct{})}
	uc := newTestUsecase(agg, cache.NewMemory())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.Matches(ctx, MatchParams{})
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return agg.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	type outcome struct {
		res MatchResult
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, err := uc.Matches(context.Background(), MatchParams{})
		second <- outcome{res, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(agg.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 3, got.res.TotalJobs)
	assert.Equal(t, int32(1), agg.calls.Load())
}

func TestMatches_SharedFetchHasItsOwnTimeout(t *testing.T) {
	agg := &fakeAggregator{jobs: testPostings(), release: make(chan struct{})}
	defer close(agg.release)
	uc := NewMatchUsecase(agg, testProfile(), MatchesOptions{
		Cache:        cache.NewMemory(),
		FetchTimeout: 20 * time.Millisecond,
	}, zap.NewNop())

	_, err := uc.Matches(context.Background(), MatchParams{})
	assert.ErrorIs(t, err, ErrSourcesUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
