package config

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	WatchTeams   []string
	AdminToken   string
	Retry        RetryConfig
	RapidAPI     RapidAPIConfig
	Balldontlie  BalldontlieConfig
	Storage      StorageConfig
	Metrics      MetricsConfig
	Log          LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		WatchTeams:   listEnvOrDefault(envWatchTeams, defaultWatchTeams),
		AdminToken:   envOrDefault(envAdminToken, ""),
		Retry:        loadRetry(),
		RapidAPI:     loadRapidAPI(),
		Balldontlie:  loadBalldontlie(),
		Storage:      loadStorage(),
		Metrics:      loadMetrics(),
		Log:          loadLog(),
	}
}

// RetryConfig bounds retries of upstream game lookups.
type RetryConfig struct {
	Attempts int
	Backoff  Duration
}

func loadRetry() RetryConfig {
	return RetryConfig{
		Attempts: intEnvOrDefault(envRetryCount, defaultRetryCount),
		Backoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
	}
}
