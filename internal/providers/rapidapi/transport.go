package rapidapi

import (
	"net/http"
	"net/url"
	"strings"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// resolveHost returns the configured host header, or the host of baseURL.
func resolveHost(host, baseURL string) string {
	if host != "" {
		return host
	}
	if u, err := url.Parse(baseURL); err == nil {
		return u.Host
	}
	return ""
}
