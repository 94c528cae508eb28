package balldontlie

import "time"

const (
	defaultBaseURL     = "https://api.balldontlie.io/v1"
	defaultPerPage     = 100
	defaultHTTPTimeout = 10 * time.Second
	defaultTimezone    = "America/New_York"
	defaultMaxPages    = 5
)
