package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/app/roster"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/poller"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// TeamStore holds the teams the service knows about.
type TeamStore interface {
	ListTeams() []teams.NBATeam
	GetTeam(shortName string) (teams.NBATeam, bool)
	UpdateTeam(shortName string, fn func(*teams.NBATeam)) teams.NBATeam
}

// Handler serves the read-only team routes.
type Handler struct {
	svc         *roster.Service
	store       TeamStore
	historicDir string
	logger      *slog.Logger
	statusFn    func() poller.Status
}

// NewHandler constructs a Handler. Historic files are read from
// historicDir/<SHORT>.json. statusFn may be nil when no poller runs.
func NewHandler(svc *roster.Service, store TeamStore, historicDir string, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:         svc,
		store:       store,
		historicDir: historicDir,
		logger:      logger,
		statusFn:    statusFn,
	}
}

type teamView struct {
	ShortName       string     `json:"shortName"`
	Info            teams.Team `json:"info"`
	Standing        string     `json:"standing"`
	Wins            int        `json:"wins"`
	Defeats         int        `json:"defeats"`
	Players         int        `json:"players"`
	HistoricPlayers int        `json:"historicPlayers"`
}

func newTeamView(t teams.NBATeam) teamView {
	return teamView{
		ShortName:       t.Profile.ShortName,
		Info:            t.Info,
		Standing:        t.Standing.String(),
		Wins:            t.Standing.Wins,
		Defeats:         t.Standing.Defeats,
		Players:         len(t.Profile.Players),
		HistoricPlayers: len(t.HistoricPlayers),
	}
}

type playersView struct {
	ShortName string           `json:"shortName"`
	Count     int              `json:"count"`
	Players   []records.Record `json:"players"`
}

func newPlayersView(short string, players []records.Record) playersView {
	if players == nil {
		players = []records.Record{}
	}
	return playersView{ShortName: short, Count: len(players), Players: players}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Teams lists every team the service has seen.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	stored := h.store.ListTeams()
	views := make([]teamView, 0, len(stored))
	for _, t := range stored {
		views = append(views, newTeamView(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": views, "count": len(views)}, h.logger)
}

// Team looks the team up upstream and returns it with its standing.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	team, err := h.resolve(r.Context(), mux.Vars(r)["short"])
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	stored := h.store.UpdateTeam(team.Profile.ShortName, func(t *teams.NBATeam) {
		t.Info = team.Info
	})
	writeJSON(w, http.StatusOK, newTeamView(stored), logger)
}

// Players returns the current roster of the team.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	ctx := r.Context()
	team, err := h.resolve(ctx, mux.Vars(r)["short"])
	if err == nil {
		err = h.svc.BuildPlayersByTeamID(ctx, team)
	}
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	h.store.UpdateTeam(team.Profile.ShortName, func(t *teams.NBATeam) {
		t.Info = team.Info
		t.Profile.Players = team.Profile.Players
	})
	logging.Info(logger, "served roster", logging.FieldTeam, team.Profile.ShortName, logging.FieldCount, len(team.Profile.Players))
	writeJSON(w, http.StatusOK, newPlayersView(team.Profile.ShortName, team.Profile.Players), logger)
}

// Historic imports the historic players file of the team. Each call reads
// the file afresh; the stored collection is replaced, not appended to.
func (h *Handler) Historic(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	short, err := teams.NormalizeShortName(mux.Vars(r)["short"])
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}

	team := teams.NewNBATeam(short)
	historic, err := h.svc.ImportHistoricPlayers(r.Context(), team, filepath.Join(h.historicDir, short+".json"))
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	h.store.UpdateTeam(short, func(t *teams.NBATeam) {
		t.HistoricPlayers = historic
	})
	writeJSON(w, http.StatusOK, newPlayersView(short, historic), logger)
}

// Standing returns the tally kept by the result poller.
func (h *Handler) Standing(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	short, err := teams.NormalizeShortName(mux.Vars(r)["short"])
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	stored, _ := h.store.GetTeam(short)
	writeJSON(w, http.StatusOK, map[string]any{
		"shortName": short,
		"standing":  stored.Standing.String(),
		"wins":      stored.Standing.Wins,
		"defeats":   stored.Standing.Defeats,
	}, logger)
}

// resolve validates the short name and returns a fresh team with Info
// filled from the lookup provider.
func (h *Handler) resolve(ctx context.Context, raw string) (*teams.NBATeam, error) {
	short, err := teams.NormalizeShortName(raw)
	if err != nil {
		return nil, err
	}
	team := teams.NewNBATeam(short)
	if err := h.svc.BuildDataByName(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}
