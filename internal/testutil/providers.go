package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// ErrStubTeamNotFound is returned by RosterStub for unknown short names.
var ErrStubTeamNotFound = errors.New("stub: team not found")

// RosterStub serves teams by short name and players by team id.
type RosterStub struct {
	mu          sync.Mutex
	Teams       map[string]teams.Team
	Players     map[string][]records.Record
	TeamErr     error
	PlayersErr  error
	TeamCalls   int
	PlayerCalls int
}

func (s *RosterStub) FetchTeamByShortName(ctx context.Context, shortName string) (teams.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TeamCalls++
	if s.TeamErr != nil {
		return teams.Team{}, s.TeamErr
	}
	team, ok := s.Teams[strings.ToUpper(shortName)]
	if !ok {
		return teams.Team{}, ErrStubTeamNotFound
	}
	return team, nil
}

func (s *RosterStub) FetchPlayersByTeamID(ctx context.Context, teamID string) ([]records.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PlayerCalls++
	if s.PlayersErr != nil {
		return nil, s.PlayersErr
	}
	return s.Players[teamID], nil
}

// GameStub returns games keyed by YYYY-MM-DD date.
type GameStub struct {
	mu     sync.Mutex
	ByDate map[string][]games.Game
	Err    error
	Dates  []string
}

func (s *GameStub) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dates = append(s.Dates, date)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.ByDate[date], nil
}

// Calls returns how many fetches were made.
func (s *GameStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Dates)
}
