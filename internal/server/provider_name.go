package server

import "strings"

const (
	providerFixture     = "fixture"
	providerRapidAPI    = "rapidapi"
	providerBalldontlie = "balldontlie"
)

// normalizeProviderName returns the lower-cased configured provider,
// defaulting to the fixture provider when unset.
// Used across server and CLI wiring to keep naming consistent in metrics/logs.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return providerFixture
	}
	return name
}
