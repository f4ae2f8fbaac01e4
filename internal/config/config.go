// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	APIURL        string
	DBPath        string
	Port          string
	PageBudget    float64 // px
	SnapDistance  float64 // screen px
	WallThickness float64 // mm
}

// Load loads configuration from environment variables, reading .env first if it exists
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:        getEnv("GORCDRAFT_API_URL", "http://localhost:3000"),
		DBPath:        getEnv("GORCDRAFT_DB", defaultDBPath()),
		Port:          getEnv("GORCDRAFT_PORT", "8080"),
		PageBudget:    getEnvAsFloat("GORCDRAFT_PAGE_BUDGET", 760),
		SnapDistance:  getEnvAsFloat("GORCDRAFT_SNAP_DISTANCE", 15),
		WallThickness: getEnvAsFloat("GORCDRAFT_WALL_THICKNESS", 230),
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "gorcdraft", "state.db")
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// getEnvAsFloat ignores unparsable and non-positive values
func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}
