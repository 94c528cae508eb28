package rapidapi

import "time"

const (
	providerName       = "rapidapi"
	defaultBaseURL     = "https://api-nba-v1.p.rapidapi.com"
	defaultHTTPTimeout = 10 * time.Second

	headerKey  = "x-rapidapi-key"
	headerHost = "x-rapidapi-host"
)
