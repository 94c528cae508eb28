package providers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/cache"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

const teamCacheKeyPrefix = "team:"

// cachedTeamProvider serves team descriptors from a cache and falls back to
// the wrapped provider on a miss. Cache failures never fail the lookup.
type cachedTeamProvider struct {
	inner  TeamProvider
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
	name   string
}

// NewCachedTeamProvider wraps inner with a read-through cache keyed by short name.
func NewCachedTeamProvider(inner TeamProvider, c cache.Cache, ttl time.Duration, logger *slog.Logger, name string) TeamProvider {
	if c == nil {
		return inner
	}
	return &cachedTeamProvider{inner: inner, cache: c, ttl: ttl, logger: logger, name: name}
}

func (p *cachedTeamProvider) FetchTeamByShortName(ctx context.Context, shortName string) (teams.Team, error) {
	key := teamCacheKeyPrefix + strings.ToUpper(shortName)

	data, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var team teams.Team
		if jsonErr := json.Unmarshal(data, &team); jsonErr == nil {
			return team, nil
		}
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "discarding unreadable cached team", "key", key)
	case !errors.Is(err, cache.ErrMiss):
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "team cache read failed", "key", key, "err", err)
	}

	team, err := p.inner.FetchTeamByShortName(ctx, shortName)
	if err != nil {
		return teams.Team{}, err
	}

	if encoded, jsonErr := json.Marshal(team); jsonErr == nil {
		if setErr := p.cache.Set(ctx, key, encoded, p.ttl); setErr != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "team cache write failed", "key", key, "err", setErr)
		}
	}
	return team, nil
}
