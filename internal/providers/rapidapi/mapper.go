package rapidapi

import (
	"strings"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

func mapTeam(t teamResponse) teams.Team {
	return teams.Team{
		ID:           strings.TrimSpace(t.TeamID),
		Name:         t.Nickname,
		FullName:     t.FullName,
		Abbreviation: strings.ToUpper(t.ShortName),
		City:         t.City,
		Conference:   t.Leagues.Standard.ConfName,
		Division:     t.Leagues.Standard.DivName,
		LogoURL:      t.Logo,
	}
}
