package config

import (
	"os"
)

type Config struct {
	OutDir      string
	ProfilesDir string
	RunsDB      string
	LogLevel    string
}

func Load() *Config {
	return &Config{
		OutDir:      getEnv("TPCHGEN_OUT_DIR", "."),
		ProfilesDir: getEnv("TPCHGEN_PROFILES_DIR", "./profiles"),
		RunsDB:      getEnv("TPCHGEN_RUNS_DB", "./tpchgen-runs.sqlite"),
		LogLevel:    getEnv("TPCHGEN_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
