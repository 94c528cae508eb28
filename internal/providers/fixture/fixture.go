package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

const providerName = "fixture"

// Provider returns static teams, players and games useful for local testing and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// Teams returns the deterministic team set. IDs match the upstream team ids.
func Teams() []teams.Team {
	return []teams.Team{
		{ID: "2", Name: "Celtics", FullName: "Boston Celtics", Abbreviation: "BOS", City: "Boston", Conference: "East", Division: "Atlantic", LogoURL: "https://upload.wikimedia.org/wikipedia/fr/thumb/6/65/Celtics_de_Boston_logo.svg/1024px-Celtics_de_Boston_logo.svg.png"},
		{ID: "17", Name: "Lakers", FullName: "Los Angeles Lakers", Abbreviation: "LAL", City: "Los Angeles", Conference: "West", Division: "Pacific"},
		{ID: "11", Name: "Warriors", FullName: "Golden State Warriors", Abbreviation: "GSW", City: "San Francisco", Conference: "West", Division: "Pacific"},
		{ID: "20", Name: "Heat", FullName: "Miami Heat", Abbreviation: "MIA", City: "Miami", Conference: "East", Division: "Southeast"},
	}
}

// CelticsPlayers returns four Boston players with the twelve upstream roster fields.
func CelticsPlayers() []records.Record {
	return []records.Record{
		records.NewRecord(
			"firstName", "Jaylen", "lastName", "Brown", "teamId", "2", "yearsPro", "4",
			"collegeName", "California", "country", "USA", "playerId", "75",
			"dateOfBirth", "1996-10-24", "affiliation", "California/USA", "startNba", "2016",
			"heightInMeters", "1.98", "weightInKilograms", "101.2",
		),
		records.NewRecord(
			"firstName", "Evan", "lastName", "Fournier", "teamId", "2", "yearsPro", "8",
			"collegeName", "Poitiers Basket 86", "country", "France", "playerId", "177",
			"dateOfBirth", "1992-10-29", "affiliation", "Poitiers Basket 86/France", "startNba", "2012",
			"heightInMeters", "2.01", "weightInKilograms", "93.0",
		),
		records.NewRecord(
			"firstName", "Marcus", "lastName", "Smart", "teamId", "2", "yearsPro", "6",
			"collegeName", "Oklahoma State", "country", "USA", "playerId", "486",
			"dateOfBirth", "1994-03-06", "affiliation", "Oklahoma State/USA", "startNba", "2014",
			"heightInMeters", "1.9", "weightInKilograms", "99.8",
		),
		records.NewRecord(
			"firstName", "Jayson", "lastName", "Tatum", "teamId", "2", "yearsPro", "3",
			"collegeName", "Duke", "country", "USA", "playerId", "882",
			"dateOfBirth", "1998-03-03", "affiliation", "Duke/USA", "startNba", "2017",
			"heightInMeters", "2.03", "weightInKilograms", "95.3",
		),
	}
}

// FetchTeamByShortName looks the short name up in Teams, ignoring case.
func (p *Provider) FetchTeamByShortName(ctx context.Context, shortName string) (teams.Team, error) {
	for _, t := range Teams() {
		if strings.EqualFold(t.Abbreviation, shortName) {
			return t, nil
		}
	}
	return teams.Team{}, fmt.Errorf("%w: %s", providers.ErrTeamNotFound, shortName)
}

// FetchPlayersByTeamID returns CelticsPlayers for Boston and an empty roster
// for the other fixture teams.
func (p *Provider) FetchPlayersByTeamID(ctx context.Context, teamID string) ([]records.Record, error) {
	for _, t := range Teams() {
		if t.ID != teamID {
			continue
		}
		if t.Abbreviation == "BOS" {
			return CelticsPlayers(), nil
		}
		return []records.Record{}, nil
	}
	return nil, fmt.Errorf("%w: team id %s", providers.ErrTeamNotFound, teamID)
}

// FetchGames returns a deterministic set of example games. The Boston game
// is already final so result checks have something to report.
func (p *Provider) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	start := p.now().UTC().Truncate(time.Hour)
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err == nil {
			start = parsed.UTC()
		}
	}
	all := Teams()
	day := start.Format("20060102")

	return []games.Game{
		{
			ID:        "fixture-" + day + "-1",
			Provider:  providerName,
			HomeTeam:  all[0],
			AwayTeam:  all[1],
			StartTime: start.Add(2 * time.Hour).Format(time.RFC3339),
			Status:    games.StatusFinal,
			Score:     games.Score{Home: 112, Away: 104},
			Meta:      games.GameMeta{Season: "2023-2024", UpstreamGameID: 1001},
		},
		{
			ID:        "fixture-" + day + "-2",
			Provider:  providerName,
			HomeTeam:  all[2],
			AwayTeam:  all[3],
			StartTime: start.Add(4 * time.Hour).Format(time.RFC3339),
			Status:    games.StatusScheduled,
			Score:     games.Score{Home: 0, Away: 0},
			Meta:      games.GameMeta{Season: "2023-2024", UpstreamGameID: 1002},
		},
	}, nil
}
