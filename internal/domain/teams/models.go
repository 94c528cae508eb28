package teams

import (
	"fmt"

	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// Team is the normalized team descriptor returned by lookup providers.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

// Profile is the league-agnostic part of a team: its short name and roster.
type Profile struct {
	ShortName string           `json:"shortName"`
	Players   []records.Record `json:"players"`
}

// AddPlayer appends a player to the roster.
func (p *Profile) AddPlayer(player records.Record) {
	p.Players = append(p.Players, player)
}

// Standing is a running win/defeat tally.
type Standing struct {
	Wins    int `json:"wins"`
	Defeats int `json:"defeats"`
}

func (s Standing) String() string {
	return fmt.Sprintf("%d-%d", s.Wins, s.Defeats)
}

// NBATeam attaches NBA lookup data, historic players and a standing to a Profile.
// Values are not safe for concurrent mutation.
type NBATeam struct {
	Profile         Profile          `json:"profile"`
	Info            Team             `json:"info"`
	HistoricPlayers []records.Record `json:"historicPlayers"`
	Standing        Standing         `json:"standing"`
}

// NewNBATeam returns an empty team for the given short name.
func NewNBATeam(shortName string) *NBATeam {
	return &NBATeam{Profile: Profile{ShortName: shortName}}
}
