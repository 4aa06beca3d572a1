package app

import (
	"context"
	"errors"

	"jobmatch/internal/config"
	"jobmatch/internal/domain/matching"
	"jobmatch/internal/domain/profile"
	"jobmatch/internal/infrastructure/cache"
	"jobmatch/internal/infrastructure/source"
	"jobmatch/internal/logger"
	"jobmatch/internal/service"
	"jobmatch/internal/usecase"

	"go.uber.org/zap"
)

// Container holds the wired service graph shared by the HTTP server and the
// CLI.
type Container struct {
	Config     config.Config
	Logger     *zap.Logger
	Profile    profile.Profile
	Engine     *matching.Engine
	Aggregator *service.DefaultJobAggregator
	Cache      usecase.SearchCache
	CacheName  string
	Matches    *usecase.Matches

	closers []func() error
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	prof, err := config.LoadProfile(cfg.Profile.File)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		Profile: prof,
		Engine:  matching.DefaultEngine(),
	}

	c.Aggregator = service.NewJobAggregator(log, 0, buildSources(cfg, log)...)
	c.Cache = c.buildCache(cfg, log)
	c.Matches = usecase.NewMatchUsecase(c.Aggregator, prof, usecase.MatchesOptions{
		Cache:    c.Cache,
		CacheTTL: cfg.Cache.TTL,
		Engine:   c.Engine,
	}, log)

	return c, nil
}

func buildSources(cfg config.Config, log *zap.Logger) []service.JobSource {
	if cfg.App.UseMockData {
		log.Info("using mock job data", zap.String("reason", "USE_MOCK_DATA"))
		return []service.JobSource{source.NewMock(nil)}
	}

	var out []service.JobSource

	if cfg.FranceTravail.Enabled() {
		out = append(out, source.NewFranceTravail(source.FranceTravailOptions{
			ClientID:       cfg.FranceTravail.ClientID,
			ClientSecret:   cfg.FranceTravail.ClientSecret,
			Region:         cfg.FranceTravail.Region,
			Domain:         cfg.FranceTravail.Domain,
			PublishedSince: cfg.FranceTravail.PublishedSince,
		}, log))
	} else {
		log.Warn("France Travail credentials not configured",
			zap.String("hint", "register at https://francetravail.io and set POLE_EMPLOI_CLIENT_ID and POLE_EMPLOI_CLIENT_SECRET"),
		)
	}

	if cfg.Adzuna.Enabled() {
		out = append(out, source.NewAdzuna(source.AdzunaOptions{
			AppID:   cfg.Adzuna.AppID,
			AppKey:  cfg.Adzuna.AppKey,
			Country: cfg.Adzuna.Country,
			Where:   cfg.Adzuna.Where,
		}, log))
	}

	if len(out) == 0 {
		log.Warn("no job source configured, falling back to mock data")
		return []service.JobSource{source.NewMock(nil)}
	}
	return out
}

func (c *Container) buildCache(cfg config.Config, log *zap.Logger) usecase.SearchCache {
	if cfg.Cache.RedisAddr != "" {
		r := cache.NewRedis(cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}, log)
		if r.Available() {
			c.closers = append(c.closers, r.Close)
			c.CacheName = "redis"
			log.Info("results cache", zap.String("backend", c.CacheName), zap.Duration("ttl", cfg.Cache.TTL))
			return r
		}
		log.Warn("redis unavailable, using in-memory results cache", zap.String("addr", cfg.Cache.RedisAddr))
	}
	c.CacheName = "memory"
	log.Info("results cache", zap.String("backend", c.CacheName), zap.Duration("ttl", cfg.Cache.TTL))
	return cache.NewMemory()
}

type snapshotPurger interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// PurgeSnapshots drops every cached search result from the backend.
func (c *Container) PurgeSnapshots(ctx context.Context) error {
	if p, ok := c.Cache.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return err
		}
	}
	p, ok := c.Cache.(snapshotPurger)
	if !ok {
		return nil
	}
	return p.DeleteByPattern(ctx, usecase.JobsSnapshotPattern())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
