package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string // SQLite file path (default) or postgres:// DSN
	RedisURL    string // optional; health traffic counters are disabled when empty
	LogLevel    string
}

// Load loads config from env and an optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}
	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = "grants.db"
	}
	logLevel := viper.GetString("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		Env:         env,
		Port:        port,
		DatabaseURL: dbURL,
		RedisURL:    viper.GetString("REDIS_URL"),
		LogLevel:    logLevel,
	}, nil
}
