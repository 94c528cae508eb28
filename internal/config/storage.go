package config

import "time"

// StorageConfig locates historic inputs, export outputs and the team cache.
type StorageConfig struct {
	HistoricDir string
	ExportDir   string
	// RedisURL selects the Redis team cache; empty means in-memory.
	RedisURL     string
	TeamCacheTTL time.Duration
}

func loadStorage() StorageConfig {
	return StorageConfig{
		HistoricDir:  envOrDefault(envHistoricDir, defaultHistoricDir),
		ExportDir:    envOrDefault(envExportDir, defaultExportDir),
		RedisURL:     envOrDefault(envRedisURL, ""),
		TeamCacheTTL: durationEnvOrDefault(envTeamCacheTTL, defaultTeamCacheTTL),
	}
}
