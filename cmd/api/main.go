package main

import (
	"os"
	"os/signal"
	"syscall"

	"grants-backend/internal/app"
	"grants-backend/internal/config"
	"grants-backend/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	setupLogger(cfg)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate store")
	}
	log.Info().Str("database", cfg.DatabaseURL).Msg("store ready")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		rdb = redis.NewClient(opt)
	}

	fiberApp := app.CreateApp(cfg, db, rdb)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		_ = fiberApp.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("close store")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
