package server

import (
	"errors"
	"log/slog"

	"github.com/preston-bernstein/nba-roster-service/internal/app/roster"
	"github.com/preston-bernstein/nba-roster-service/internal/cache"
	"github.com/preston-bernstein/nba-roster-service/internal/championship"
	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/pipeline"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-roster-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-roster-service/internal/providers/rapidapi"
)

const (
	teamCachePrefix  = "nba-roster:"
	championshipName = "NBA"
)

// Components are the collaborators shared by the HTTP server and the CLI.
type Components struct {
	// ProviderName is the configured roster provider.
	ProviderName string
	// GamesName labels the game provider in metrics and logs.
	GamesName    string
	Teams        providers.TeamProvider
	Players      providers.PlayerProvider
	Games        providers.GameProvider
	Importer     *pipeline.Importer
	Exporter     *pipeline.Exporter
	Championship *championship.Championship

	closers []func() error
}

var newRedisCache = func(url string) (*cache.Redis, error) {
	return cache.NewRedis(url, teamCachePrefix)
}

// BuildComponents selects providers from cfg and wires the team cache,
// record pipeline and championship. An unreachable Redis falls back to the
// in-memory cache. Close releases what BuildComponents opened.
func BuildComponents(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Components {
	c := &Components{
		ProviderName: normalizeProviderName(cfg.Provider),
		Importer:     pipeline.NewImporter(nil, logger, recorder),
		Exporter:     pipeline.NewExporter(nil, logger, recorder),
		Championship: championship.New(championshipName),
	}

	var lookup providers.RosterProvider
	switch c.ProviderName {
	case providerRapidAPI:
		lookup = rapidapi.NewClient(rapidapi.Config{
			BaseURL: cfg.RapidAPI.BaseURL,
			APIKey:  cfg.RapidAPI.APIKey,
			Host:    cfg.RapidAPI.Host,
			Metrics: recorder,
		})
		c.Games = balldontlie.NewClient(balldontlie.Config{
			BaseURL: cfg.Balldontlie.BaseURL,
			APIKey:  cfg.Balldontlie.APIKey,
		})
		c.GamesName = providerBalldontlie
	default:
		if c.ProviderName != providerFixture {
			logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
			c.ProviderName = providerFixture
		}
		fx := fixture.New()
		lookup = fx
		c.Games = fx
		c.GamesName = providerFixture
	}

	c.Teams = providers.NewCachedTeamProvider(lookup, c.buildTeamCache(cfg, logger), cfg.Storage.TeamCacheTTL, logger, c.ProviderName)
	c.Players = lookup
	return c
}

func (c *Components) buildTeamCache(cfg config.Config, logger *slog.Logger) cache.Cache {
	if cfg.Storage.RedisURL == "" {
		return cache.NewMemory()
	}
	redisCache, err := newRedisCache(cfg.Storage.RedisURL)
	if err != nil {
		logging.Warn(logger, "redis unavailable, using in-memory team cache", "err", err)
		return cache.NewMemory()
	}
	logging.Info(logger, "team cache connected to redis")
	c.closers = append(c.closers, redisCache.Close)
	return redisCache
}

// RosterService returns a roster.Service over the components. results may
// be nil when result checks are not needed.
func (c *Components) RosterService(results roster.ResultChecker, logger *slog.Logger) *roster.Service {
	return roster.NewService(roster.Deps{
		Teams:     c.Teams,
		Players:   c.Players,
		Importer:  c.Importer,
		Exporter:  c.Exporter,
		Registrar: c.Championship,
		Results:   results,
		Logger:    logger,
	})
}

// Close releases external connections.
func (c *Components) Close() error {
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

