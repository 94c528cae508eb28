package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/nba-roster-service/internal/championship"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/recordstream"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeFailure maps err to a status code and client-safe message, logging
// server-side failures with the full error.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := classify(err)
	if rl, ok := providers.AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
	}
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, slog.Int(logging.FieldStatusCode, status))
	} else {
		logging.Warn(logger, "request rejected", slog.Int(logging.FieldStatusCode, status), "err", err)
	}
	writeError(w, r, status, message, logger)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, teams.ErrInvalidShortName):
		return http.StatusBadRequest, "invalid team short name"
	case errors.Is(err, providers.ErrTeamNotFound):
		return http.StatusNotFound, "team not found"
	case errors.Is(err, recordstream.ErrSourceUnavailable):
		return http.StatusNotFound, "historic data unavailable"
	case errors.Is(err, championship.ErrRegistrationRefused):
		return http.StatusConflict, "unable to register team"
	case errors.Is(err, providers.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, "provider unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timeout"
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return http.StatusServiceUnavailable, "upstream rate limited"
	}
	switch {
	case errors.Is(err, providers.ErrRemoteService):
		return http.StatusBadGateway, "upstream request failed"
	case errors.Is(err, recordstream.ErrMalformedInput):
		return http.StatusInternalServerError, "historic data is malformed"
	case errors.Is(err, recordstream.ErrIOFailure):
		return http.StatusInternalServerError, "record stream failure"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
