package balldontlie

import (
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
)

func TestMapGameTransformsFields(t *testing.T) {
	resp := gameResponse{
		ID:               42,
		Date:             "2024-01-02T20:00:00Z",
		Status:           "In Progress",
		HomeTeam:         teamResponse{ID: 2, FullName: "Boston Celtics", Abbreviation: "BOS"},
		VisitorTeam:      teamResponse{ID: 14, FullName: "Los Angeles Lakers", Abbreviation: "LAL"},
		HomeTeamScore:    55,
		VisitorTeamScore: 50,
		Season:           2024,
	}

	game := mapGame(resp)

	if game.ID != "balldontlie-42" || game.Provider != "balldontlie" {
		t.Fatalf("unexpected id/provider: %+v", game)
	}
	if game.Status != games.StatusInProgress {
		t.Fatalf("expected in progress status, got %s", game.Status)
	}
	if game.Score.Home != 55 || game.Score.Away != 50 {
		t.Fatalf("unexpected scores %+v", game.Score)
	}
	if game.Meta.UpstreamGameID != 42 || game.Meta.Season != "2024" {
		t.Fatalf("unexpected meta %+v", game.Meta)
	}
	if !game.Involves("BOS") || !game.WonBy("BOS") {
		t.Fatalf("expected Boston to lead the game, got %+v", game)
	}
	if game.HomeTeam.ID != "team-2" || game.AwayTeam.ID != "team-14" {
		t.Fatalf("unexpected team ids home=%s away=%s", game.HomeTeam.ID, game.AwayTeam.ID)
	}
}

func TestMapStatusCoversVariants(t *testing.T) {
	cases := map[string]games.GameStatus{
		"Final":       games.StatusFinal,
		"In Progress": games.StatusInProgress,
		"Postponed":   games.StatusPostponed,
		"Canceled":    games.StatusCanceled,
		"Unknown":     games.StatusScheduled,
	}

	for input, expected := range cases {
		if got := mapStatus(input); got != expected {
			t.Fatalf("status %s expected %s, got %s", input, expected, got)
		}
	}
}

func TestFormatSeason(t *testing.T) {
	if got := formatSeason(2024); got != "2024" {
		t.Fatalf("expected season to be formatted as string, got %s", got)
	}
}
