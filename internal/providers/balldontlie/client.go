package balldontlie

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timezone   string
	MaxPages   int
}

// Client fetches game results from the balldontlie API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	maxPages   int
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
		maxPages:   resolveMaxPages(cfg.MaxPages),
	}
}

// FetchGames retrieves the games of one day, following pagination up to
// the configured page cap. Upstream failures match providers.ErrRemoteService.
func (c *Client) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	loc := c.loc
	if override := providers.ResolveTimezone(tz); override != nil {
		loc = override
	}
	day := c.resolveDate(date, loc)

	all := make([]games.Game, 0)
	for page := 1; ; page++ {
		payload, err := c.fetchPage(ctx, day, page)
		if err != nil {
			return nil, err
		}
		for _, g := range payload.Data {
			all = append(all, mapGame(g))
		}
		if lastPage(payload, page) || page >= c.maxPages {
			break
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, day string, page int) (gamesResponse, error) {
	var payload gamesResponse

	req, err := c.buildRequest(ctx, day, page)
	if err != nil {
		return payload, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return payload, providers.TransportError(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return payload, providers.ResponseError(providerName, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, providers.TransportError(providerName, err)
	}
	return payload, nil
}

func lastPage(payload gamesResponse, page int) bool {
	if total := payload.Meta.TotalPages; total > 0 {
		return page >= total
	}
	return len(payload.Data) < defaultPerPage
}

func (c *Client) buildRequest(ctx context.Context, day string, page int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("dates[]", day)
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

func (c *Client) resolveDate(date string, loc *time.Location) string {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			return date
		}
	}
	return c.now().In(loc).Format("2006-01-02")
}
