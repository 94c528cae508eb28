package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// Config controls how the client reaches the api-nba endpoints on RapidAPI.
type Config struct {
	BaseURL    string
	APIKey     string
	Host       string
	HTTPClient *http.Client
	Metrics    *metrics.Recorder
}

// Client looks teams and rosters up on RapidAPI. Calls are not retried.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient httpDoer
	metrics    *metrics.Recorder
}

// NewClient constructs a RapidAPI client with the provided configuration.
func NewClient(cfg Config) *Client {
	base := normalizeBaseURL(cfg.BaseURL)
	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		host:       resolveHost(cfg.Host, base),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		metrics:    cfg.Metrics,
	}
}

// FetchTeamByShortName resolves a team descriptor. The first team in the
// response wins; an empty list yields providers.ErrTeamNotFound.
func (c *Client) FetchTeamByShortName(ctx context.Context, shortName string) (teams.Team, error) {
	var payload teamsEnvelope
	if err := c.get(ctx, "/teams/shortName/"+url.PathEscape(shortName), &payload); err != nil {
		return teams.Team{}, err
	}
	if len(payload.API.Teams) == 0 {
		return teams.Team{}, fmt.Errorf("%w: %s", providers.ErrTeamNotFound, shortName)
	}
	return mapTeam(payload.API.Teams[0]), nil
}

// FetchPlayersByTeamID returns the roster as records, keeping the upstream field order.
func (c *Client) FetchPlayersByTeamID(ctx context.Context, teamID string) ([]records.Record, error) {
	var payload playersEnvelope
	if err := c.get(ctx, "/players/teamId/"+url.PathEscape(teamID), &payload); err != nil {
		return nil, err
	}
	if payload.API.Players == nil {
		return []records.Record{}, nil
	}
	return payload.API.Players, nil
}

func (c *Client) get(ctx context.Context, path string, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordProviderAttempt(providerName, time.Since(start), err)
		if rl, ok := providers.AsRateLimitError(err); ok {
			c.metrics.RecordRateLimit(providerName, rl.RetryAfter)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set(headerKey, c.apiKey)
	}
	if c.host != "" {
		req.Header.Set(headerHost, c.host)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.TransportError(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providers.ResponseError(providerName, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return providers.TransportError(providerName, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
