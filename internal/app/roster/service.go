package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/notifier"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// ErrTeamNotResolved is returned by player lookups before BuildDataByName has
// filled in the team's upstream id.
var ErrTeamNotResolved = errors.New("team data not loaded")

// Importer appends records read from source to acc.
type Importer interface {
	Import(ctx context.Context, source string, acc []records.Record) ([]records.Record, error)
}

// Exporter writes records to destination.
type Exporter interface {
	Export(ctx context.Context, destination string, recs []records.Record) error
}

// Registrar enrols a team in a competition.
type Registrar interface {
	RegisterTeam(ctx context.Context, team *teams.NBATeam) (bool, error)
}

// ResultChecker reports the next unreported result for a team.
type ResultChecker interface {
	Check(ctx context.Context, shortName string) (notifier.Outcome, error)
}

// Deps wires the collaborators of a Service. Any of them may be nil; the
// matching operation then fails with providers.ErrProviderUnavailable,
// except Registrar whose absence makes Register succeed.
type Deps struct {
	Teams     providers.TeamProvider
	Players   providers.PlayerProvider
	Importer  Importer
	Exporter  Exporter
	Registrar Registrar
	Results   ResultChecker
	Logger    *slog.Logger
}

// Service runs the per-team operations. It holds no team state itself; the
// *teams.NBATeam passed in is mutated and must not be shared across goroutines.
type Service struct {
	deps Deps
}

// NewService constructs a Service from its collaborators.
func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

// BuildDataByName fills team.Info from the team lookup by short name.
func (s *Service) BuildDataByName(ctx context.Context, team *teams.NBATeam) error {
	if s.deps.Teams == nil {
		return providers.ErrProviderUnavailable
	}
	info, err := s.deps.Teams.FetchTeamByShortName(ctx, team.Profile.ShortName)
	if err != nil {
		return fmt.Errorf("lookup team %s: %w", team.Profile.ShortName, err)
	}
	team.Info = info
	logging.Debug(s.log(ctx), "team data loaded", logging.FieldTeam, team.Profile.ShortName, logging.FieldTeamID, info.ID)
	return nil
}

// BuildPlayersByTeamID replaces the roster with the players of team.Info.ID.
// On failure the current roster is kept.
func (s *Service) BuildPlayersByTeamID(ctx context.Context, team *teams.NBATeam) error {
	if s.deps.Players == nil {
		return providers.ErrProviderUnavailable
	}
	if team.Info.ID == "" {
		return fmt.Errorf("%w: %s", ErrTeamNotResolved, team.Profile.ShortName)
	}
	players, err := s.deps.Players.FetchPlayersByTeamID(ctx, team.Info.ID)
	if err != nil {
		return fmt.Errorf("lookup players of %s: %w", team.Profile.ShortName, err)
	}
	team.Profile.Players = players
	logging.Debug(s.log(ctx), "players loaded", logging.FieldTeam, team.Profile.ShortName, logging.FieldCount, len(players))
	return nil
}

// ImportHistoricPlayers appends the historic players read from source to
// team.HistoricPlayers and returns the accumulated collection. On failure
// team.HistoricPlayers is left as it was.
func (s *Service) ImportHistoricPlayers(ctx context.Context, team *teams.NBATeam, source string) ([]records.Record, error) {
	if s.deps.Importer == nil {
		return team.HistoricPlayers, providers.ErrProviderUnavailable
	}
	out, err := s.deps.Importer.Import(ctx, source, team.HistoricPlayers)
	if err != nil {
		return team.HistoricPlayers, err
	}
	team.HistoricPlayers = out
	return out, nil
}

// ExportPlayers writes the current roster to destination as line-delimited JSON.
func (s *Service) ExportPlayers(ctx context.Context, team *teams.NBATeam, destination string) error {
	if s.deps.Exporter == nil {
		return providers.ErrProviderUnavailable
	}
	return s.deps.Exporter.Export(ctx, destination, team.Profile.Players)
}

// Register enrols the team with the configured registrar. Without one a
// team is always considered registered.
func (s *Service) Register(ctx context.Context, team *teams.NBATeam) (bool, error) {
	if s.deps.Registrar == nil {
		return true, nil
	}
	return s.deps.Registrar.RegisterTeam(ctx, team)
}

// CheckLatestResult asks for the next unreported result, updates the
// standing and returns a human readable summary. Errors leave the standing untouched.
func (s *Service) CheckLatestResult(ctx context.Context, team *teams.NBATeam) (string, error) {
	if s.deps.Results == nil {
		return "", fmt.Errorf("%w: %w", notifier.ErrCheckResults, providers.ErrProviderUnavailable)
	}
	outcome, err := s.deps.Results.Check(ctx, team.Profile.ShortName)
	if err != nil {
		return "", err
	}
	msg := ApplyOutcome(team, outcome)
	logging.Info(s.log(ctx), "result checked",
		logging.FieldTeam, team.Profile.ShortName,
		logging.FieldOutcome, outcome.String(),
	)
	return msg, nil
}

// ApplyOutcome updates the standing for outcome and returns the summary
// message. OutcomeNoChange and OutcomeError leave the tally as is.
func ApplyOutcome(team *teams.NBATeam, outcome notifier.Outcome) string {
	switch outcome {
	case notifier.OutcomeWon:
		team.Standing.Wins++
		return "A new win :) Total : " + team.Standing.String()
	case notifier.OutcomeLost:
		team.Standing.Defeats++
		return "A new defeat :( Total : " + team.Standing.String()
	default:
		return "No new results. Total : " + team.Standing.String()
	}
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.deps.Logger)
}
