// Package config loads application settings from environment variables
// (populated by the .env file in main.go when present).
package config

import (
	"errors"
	"fmt"
	"os"
)

// Config holds all external collaborator settings for one run.
type Config struct {
	PGConnString string
	APIEndpoint  string
	APIToken     string
	LogFile      string
	LogLevel     string
}

// Load reads the configuration from the environment. The Postgres DSN is
// taken from DATABASE_URL when set, otherwise composed from the individual
// PG_* variables.
func Load() (*Config, error) {
	cfg := &Config{
		PGConnString: os.Getenv("DATABASE_URL"),
		APIEndpoint:  os.Getenv("API_URL"),
		APIToken:     os.Getenv("API_TOKEN"),
		LogFile:      os.Getenv("ETL_LOG_FILE"),
		LogLevel:     os.Getenv("ETL_LOG_LEVEL"),
	}

	if cfg.PGConnString == "" {
		host := os.Getenv("PG_HOST")
		db := os.Getenv("PG_DB")
		user := os.Getenv("PG_USER")
		if host == "" || db == "" || user == "" {
			return nil, errors.New("database connection not configured: set DATABASE_URL or PG_HOST, PG_DB and PG_USER")
		}
		cfg.PGConnString = fmt.Sprintf("host=%s dbname=%s user=%s", host, db, user)
		if port := os.Getenv("PG_PORT"); port != "" {
			cfg.PGConnString += " port=" + port
		}
		if pass := os.Getenv("PG_PASSWORD"); pass != "" {
			cfg.PGConnString += " password=" + pass
		}
	}

	if cfg.APIEndpoint == "" {
		return nil, errors.New("API_URL environment variable not set")
	}
	if cfg.APIToken == "" {
		return nil, errors.New("API_TOKEN environment variable not set")
	}

	return cfg, nil
}
