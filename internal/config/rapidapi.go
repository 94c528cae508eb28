package config

const (
	envRapidBaseURL = "RAPIDAPI_BASE_URL"
	envRapidKey     = "RAPIDAPI_KEY"
	envRapidHost    = "RAPIDAPI_HOST"

	defaultRapidBaseURL = "https://api-nba-v1.p.rapidapi.com"
)

// RapidAPIConfig controls the team and roster API.
type RapidAPIConfig struct {
	BaseURL string
	APIKey  string
	// Host defaults to the base URL host when empty.
	Host string
}

func loadRapidAPI() RapidAPIConfig {
	return RapidAPIConfig{
		BaseURL: envOrDefault(envRapidBaseURL, defaultRapidBaseURL),
		APIKey:  envOrDefault(envRapidKey, ""),
		Host:    envOrDefault(envRapidHost, ""),
	}
}
