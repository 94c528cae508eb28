package testutil

import (
	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// HistoricChunks is a four-player historic array split across four reads,
// with one record's fields straddling two of them.
func HistoricChunks() []string {
	return []string{
		"[{\r\n  \"firstName\":\"Bob\",\r\n  \"lastName\":\"Cousy\",\r\n  \"country\":\"USA\",\r\n  \"dateOfBirth\":\"1928-08-09\",\r\n  \"number\":\"14\",\r\n  \"period\":\"1950-1963\"\r\n},\r\n{\r\n  \"firstName\":\"Bill\",\r\n  \"lastName\":\"Russell\",\r\n  \"country\":\"USA\",\r\n  \"dateOfBirth\":\"1934-02-12\"",
		",\r\n  \"number\":\"0\",\r\n  \"period\":\"1956-1969\"\r\n},\r\n{\r\n\"firstName\":\"John\",\r\n\"lastName\":\"Havlicek\",\r\n\"country\":\"USA\",\r\n\"d",
		"ateOfBirth\":\"1940-04-08\",\r\n\"number\":\"17\",\r\n\"period\":\"1962-1978\"\r\n},\r\n{\r\n\"firstName\":",
		"\"Larry\",\r\n\"lastName\":\"Bird\",\r\n\"country\":\"USA\",\r\n\"dateOfBirth\":\"1956-12-07\",\r\n\"number\":\"33\",\r\n\"period\":\"1979-1992\"\r\n}]",
	}
}

// HistoricPlayers is the decoded form of HistoricChunks.
func HistoricPlayers() []records.Record {
	return []records.Record{
		historic("Bob", "Cousy", "1928-08-09", "14", "1950-1963"),
		historic("Bill", "Russell", "1934-02-12", "0", "1956-1969"),
		historic("John", "Havlicek", "1940-04-08", "17", "1962-1978"),
		historic("Larry", "Bird", "1956-12-07", "33", "1979-1992"),
	}
}

func historic(first, last, born, number, period string) records.Record {
	return records.NewRecord(
		"firstName", first,
		"lastName", last,
		"country", "USA",
		"dateOfBirth", born,
		"number", number,
		"period", period,
	)
}

// SampleTeam returns a minimal team descriptor with the given abbreviation.
func SampleTeam(short string) teams.Team {
	return teams.Team{
		ID:           "2",
		Name:         "Celtics",
		FullName:     "Boston Celtics",
		Abbreviation: short,
		City:         "Boston",
		Conference:   "East",
		Division:     "Atlantic",
	}
}

// SampleGame returns a final game between the two abbreviations.
func SampleGame(id, home, away string, homeScore, awayScore int) games.Game {
	return games.Game{
		ID:        id,
		Provider:  "test",
		HomeTeam:  teams.Team{ID: "home", Abbreviation: home},
		AwayTeam:  teams.Team{ID: "away", Abbreviation: away},
		StartTime: "2024-01-02T00:00:00Z",
		Status:    games.StatusFinal,
		Score:     games.Score{Home: homeScore, Away: awayScore},
		Meta:      games.GameMeta{Season: "2023", UpstreamGameID: 1},
	}
}
