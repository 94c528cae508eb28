package rapidapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

const celticsBody = `{
	"api": {
		"status": 200,
		"message": "GET teams/shortName/BOS",
		"results": 1,
		"filters": ["teamId", "shortName"],
		"teams": [
			{
				"city": "Boston",
				"fullName": "Boston Celtics",
				"teamId": "2",
				"nickname": "Celtics",
				"logo": "https://example.com/celtics.png",
				"shortName": "BOS",
				"allStar": "0",
				"nbaFranchise": "1",
				"leagues": { "standard": { "confName": "East", "divName": "Atlantic" } }
			}
		]
	}
}`

const playersBody = `{
	"api": {
		"status": 200,
		"results": 2,
		"players": [
			{"firstName":"Jaylen","lastName":"Brown","teamId":"2","yearsPro":"4","collegeName":"California","country":"USA","playerId":"75","dateOfBirth":"1996-10-24","affiliation":"California/USA","startNba":"2016","heightInMeters":"1.98","weightInKilograms":"101.2"},
			{"lastName":"Tatum","firstName":"Jayson","leagues":{"standard":{"jersey":"0","active":"1"}}}
		]
	}
}`

func newTestClient(rt roundTripperFunc, rec *metrics.Recorder) *Client {
	return NewClient(Config{
		BaseURL:    "http://example.com/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		Metrics:    rec,
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchTeamByShortNameSendsHeadersAndMapsTeam(t *testing.T) {
	var captured *http.Request
	rec := metrics.NewRecorder()
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, celticsBody), nil
	}, rec)

	team, err := client.FetchTeamByShortName(context.Background(), "BOS")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured.URL.Path != "/teams/shortName/BOS" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	if got := captured.Header.Get(headerKey); got != "secret" {
		t.Fatalf("expected api key header, got %q", got)
	}
	if got := captured.Header.Get(headerHost); got != "example.com" {
		t.Fatalf("expected host header derived from base url, got %q", got)
	}
	if team.ID != "2" || team.Name != "Celtics" || team.FullName != "Boston Celtics" || team.City != "Boston" {
		t.Fatalf("unexpected team %+v", team)
	}
	if team.LogoURL != "https://example.com/celtics.png" || team.Conference != "East" || team.Division != "Atlantic" {
		t.Fatalf("unexpected team details %+v", team)
	}
	if rec.ProviderCalls(providerName) != 1 || rec.ProviderErrors(providerName) != 0 {
		t.Fatalf("expected one successful attempt, got %+v", rec.Snapshot(providerName))
	}
}

func TestFetchTeamByShortNameEmptyResult(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"api":{"status":200,"results":0,"teams":[]}}`), nil
	}, nil)

	_, err := client.FetchTeamByShortName(context.Background(), "XYZ")
	if !errors.Is(err, providers.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if errors.Is(err, providers.ErrRemoteService) {
		t.Fatalf("not found must not be reported as a remote failure")
	}
}

func TestFetchPlayersByTeamIDKeepsRecords(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/players/teamId/2" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, playersBody), nil
	}, nil)

	players, err := client.FetchPlayersByTeamID(context.Background(), "2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Len() != 12 {
		t.Fatalf("expected all upstream fields, got %d", players[0].Len())
	}
	if keys := players[1].Keys(); keys[0] != "lastName" || keys[2] != "leagues" {
		t.Fatalf("expected upstream key order, got %v", keys)
	}
	if raw, _ := players[1].Raw("leagues"); !strings.Contains(string(raw), `"jersey":"0"`) {
		t.Fatalf("expected nested value to be kept, got %s", raw)
	}
}

func TestFetchPlayersByTeamIDMissingListIsEmpty(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"api":{"status":200,"results":0}}`), nil
	}, nil)

	players, err := client.FetchPlayersByTeamID(context.Background(), "2")
	if err != nil || players == nil || len(players) != 0 {
		t.Fatalf("expected empty non-nil roster, got %v (%v)", players, err)
	}
}

func TestClientErrorMapping(t *testing.T) {
	dialErr := errors.New("connection reset")
	cases := []struct {
		name   string
		rt     roundTripperFunc
		status int
	}{
		{
			name:   "server error",
			rt:     func(*http.Request) (*http.Response, error) { return jsonResponse(http.StatusInternalServerError, "oops"), nil },
			status: http.StatusInternalServerError,
		},
		{
			name:   "forbidden",
			rt:     func(*http.Request) (*http.Response, error) { return jsonResponse(http.StatusForbidden, `{"message":"invalid key"}`), nil },
			status: http.StatusForbidden,
		},
		{
			name: "transport",
			rt:   func(*http.Request) (*http.Response, error) { return nil, dialErr },
		},
		{
			name: "decode",
			rt:   func(*http.Request) (*http.Response, error) { return jsonResponse(http.StatusOK, `{"api":`), nil },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := metrics.NewRecorder()
			_, err := newTestClient(tc.rt, rec).FetchTeamByShortName(context.Background(), "BOS")
			if !errors.Is(err, providers.ErrRemoteService) {
				t.Fatalf("expected remote service error, got %v", err)
			}
			svc, ok := providers.AsServiceError(err)
			if !ok || svc.StatusCode != tc.status {
				t.Fatalf("expected status %d, got %v", tc.status, err)
			}
			if rec.ProviderErrors(providerName) != 1 {
				t.Fatalf("expected failed attempt to be recorded")
			}
		})
	}
}

func TestClientRateLimit(t *testing.T) {
	rec := metrics.NewRecorder()
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "")
		resp.Header.Set("Retry-After", "2")
		return resp, nil
	}, rec)

	_, err := client.FetchPlayersByTeamID(context.Background(), "2")
	if !errors.Is(err, providers.ErrRemoteService) {
		t.Fatalf("expected remote service error, got %v", err)
	}
	if rl, ok := providers.AsRateLimitError(err); !ok || rl.RetryAfter != 2*time.Second {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rec.RateLimitHits(providerName) != 1 || rec.LastRetryAfter(providerName) != 2*time.Second {
		t.Fatalf("expected rate limit to be recorded")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{Host: "custom.host"})
	if c.baseURL != defaultBaseURL || c.host != "custom.host" {
		t.Fatalf("unexpected defaults %+v", c)
	}
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok || httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default http client with timeout")
	}
	if got := NewClient(Config{}).host; got != "api-nba-v1.p.rapidapi.com" {
		t.Fatalf("expected host derived from default base url, got %q", got)
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
