package games

import (
	"strings"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         string `json:"season"`
	UpstreamGameID int    `json:"upstreamGameId"`
	Period         int    `json:"period,omitempty"`
	Postseason     bool   `json:"postseason,omitempty"`
	Time           string `json:"time,omitempty"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	HomeTeam  teams.Team `json:"homeTeam"`
	AwayTeam  teams.Team `json:"awayTeam"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Meta      GameMeta   `json:"meta"`
}

// Involves reports whether the team with the given abbreviation played in the game.
func (g Game) Involves(abbreviation string) bool {
	return strings.EqualFold(g.HomeTeam.Abbreviation, abbreviation) ||
		strings.EqualFold(g.AwayTeam.Abbreviation, abbreviation)
}

// WonBy reports whether the team with the given abbreviation outscored its
// opponent. The game is expected to involve that team.
func (g Game) WonBy(abbreviation string) bool {
	if strings.EqualFold(g.HomeTeam.Abbreviation, abbreviation) {
		return g.Score.Home > g.Score.Away
	}
	return g.Score.Away > g.Score.Home
}
