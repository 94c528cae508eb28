// Package http assembles the HTTP routes of the roster service.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-roster-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
)

// RouterConfig carries what NewRouter needs. Admin routes are only mounted
// when Admin is set.
type RouterConfig struct {
	Handler    *handlers.Handler
	Admin      *handlers.AdminHandler
	AdminToken string
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// NewRouter registers every route on a gorilla/mux router wrapped in the
// logging middleware.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.NotFoundHandler = middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, nethttp.HandlerFunc(notFound))
	r.MethodNotAllowedHandler = middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, nethttp.HandlerFunc(methodNotAllowed))

	h := cfg.Handler
	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams", h.Teams).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams/{short}", h.Team).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams/{short}/players", h.Players).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams/{short}/historic", h.Historic).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams/{short}/standing", h.Standing).Methods(nethttp.MethodGet)

	if cfg.Admin != nil {
		admin := r.PathPrefix("/admin").Subrouter()
		admin.Use(middleware.RequireBearer(cfg.AdminToken, cfg.Logger))
		admin.HandleFunc("/teams/{short}/export", cfg.Admin.Export).Methods(nethttp.MethodPost)
		admin.HandleFunc("/teams/{short}/register", cfg.Admin.Register).Methods(nethttp.MethodPost)
	}

	return r
}

func notFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writePlainError(w, nethttp.StatusNotFound, "not found")
}

func methodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writePlainError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
}

func writePlainError(w nethttp.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}` + "\n"))
}
