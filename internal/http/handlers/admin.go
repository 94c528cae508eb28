package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/app/roster"
	"github.com/preston-bernstein/nba-roster-service/internal/championship"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/recordstream"
)

// AdminHandler exposes the write operations. Routes are expected to sit
// behind middleware.RequireBearer.
type AdminHandler struct {
	svc       *roster.Service
	store     TeamStore
	exportDir string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler writing exports to exportDir/<SHORT>.jsonl.
func NewAdminHandler(svc *roster.Service, store TeamStore, exportDir string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:       svc,
		store:     store,
		exportDir: exportDir,
		logger:    logger,
	}
}

// Export loads the current roster and writes it as line-delimited JSON.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	ctx := r.Context()

	short, err := teams.NormalizeShortName(mux.Vars(r)["short"])
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	team := teams.NewNBATeam(short)
	if err := h.svc.BuildDataByName(ctx, team); err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	if err := h.svc.BuildPlayersByTeamID(ctx, team); err != nil {
		writeFailure(w, r, err, logger)
		return
	}

	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		writeFailure(w, r, recordstream.IOFailure(err), logger)
		return
	}
	path := filepath.Join(h.exportDir, short+".jsonl")
	if err := h.svc.ExportPlayers(ctx, team, path); err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	h.store.UpdateTeam(short, func(t *teams.NBATeam) {
		t.Info = team.Info
		t.Profile.Players = team.Profile.Players
	})

	logging.Info(logger, "admin export written",
		logging.FieldTeam, short,
		logging.FieldCount, len(team.Profile.Players),
		logging.FieldDestination, path,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"shortName": short,
		"path":      path,
		"count":     len(team.Profile.Players),
		"status":    "ok",
	}, logger)
}

// Register enrols the team in the championship.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	ctx := r.Context()

	short, err := teams.NormalizeShortName(mux.Vars(r)["short"])
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	team := teams.NewNBATeam(short)
	if err := h.svc.BuildDataByName(ctx, team); err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	ok, err := h.svc.Register(ctx, team)
	if err == nil && !ok {
		err = championship.ErrRegistrationRefused
	}
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}

	logging.Info(logger, "team registered", logging.FieldTeam, short)
	writeJSON(w, http.StatusOK, map[string]any{
		"shortName":  short,
		"registered": true,
	}, logger)
}
