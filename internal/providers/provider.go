package providers

import (
	"context"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// GameProvider defines how upstream game data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating which day's games to fetch.
// Providers should interpret an empty date as "today" in their configured timezone.
type GameProvider interface {
	FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error)
}

// TeamProvider resolves a team descriptor from its short name (e.g. "BOS").
// An unknown short name yields ErrTeamNotFound.
type TeamProvider interface {
	FetchTeamByShortName(ctx context.Context, shortName string) (teams.Team, error)
}

// PlayerProvider fetches the current players of a team as ordered records.
type PlayerProvider interface {
	FetchPlayersByTeamID(ctx context.Context, teamID string) ([]records.Record, error)
}

// RosterProvider combines team and player lookup.
type RosterProvider interface {
	TeamProvider
	PlayerProvider
}
