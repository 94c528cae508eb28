package rapidapi

import "github.com/preston-bernstein/nba-roster-service/internal/records"

type teamsEnvelope struct {
	API struct {
		Teams []teamResponse `json:"teams"`
	} `json:"api"`
}

type playersEnvelope struct {
	API struct {
		Players []records.Record `json:"players"`
	} `json:"api"`
}

type teamResponse struct {
	City      string `json:"city"`
	FullName  string `json:"fullName"`
	TeamID    string `json:"teamId"`
	Nickname  string `json:"nickname"`
	Logo      string `json:"logo"`
	ShortName string `json:"shortName"`
	Leagues   struct {
		Standard struct {
			ConfName string `json:"confName"`
			DivName  string `json:"divName"`
		} `json:"standard"`
	} `json:"leagues"`
}
