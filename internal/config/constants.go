package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envWatchTeams   = "WATCH_TEAMS"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken   = "ADMIN_TOKEN"
	envHistoricDir  = "HISTORIC_DIR"
	envExportDir    = "EXPORT_DIR"
	envRedisURL     = "REDIS_URL"
	envTeamCacheTTL = "TEAM_CACHE_TTL"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envRetryCount   = "PROVIDER_RETRY_ATTEMPTS"
	envRetryBackoff = "PROVIDER_RETRY_BACKOFF"

	defaultPort = "4000"
	// Conservative default poll interval to respect upstream quotas (balldontlie: 5 req/min).
	defaultPollInterval = 2 * Duration(time.Minute)
	defaultProvider     = "fixture"
	defaultWatchTeams   = "BOS"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "nba-roster-service"
	defaultHistoricDir  = "data/historic"
	defaultExportDir    = "data/exports"
	defaultTeamCacheTTL = 10 * Duration(time.Minute)
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
	defaultRetryCount   = 3
	defaultRetryBackoff = 500 * Duration(time.Millisecond)
)
