package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"todo-service/internal/auth"
	"todo-service/internal/config"
	"todo-service/internal/seed"
	"todo-service/migrations"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "todo-seed").Logger()

	if err := run(); err != nil {
		log.Error().Err(err).Msg("seed data load failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.ConnectDB(cfg.DSN(), 3, time.Second)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := migrations.AutoMigrate(ctx, 3, db); err != nil {
		return err
	}

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}

	return seed.Load(ctx, db, hasher, seed.Users, seed.Todos)
}
