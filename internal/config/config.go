package config

import (
	"os"
)

type Config struct {
	DBPath       string
	SeedSamples  bool
	DefaultTheme string
}

func Load() *Config {
	return &Config{
		DBPath:       getEnv("TASKVAULT_DB", "taskvault.db"),
		SeedSamples:  getEnv("TASKVAULT_SEED_SAMPLES", "true") == "true",
		DefaultTheme: getEnv("TASKVAULT_DEFAULT_THEME", "light"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
