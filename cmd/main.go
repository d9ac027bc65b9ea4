package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"todo-service/internal/api"
	"todo-service/internal/apperror"
	"todo-service/internal/auth"
	"todo-service/internal/config"
	"todo-service/internal/events"
	"todo-service/internal/repository"
	"todo-service/internal/service"
	"todo-service/migrations"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "todo-service").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := config.ConnectDB(cfg.DSN(), 10, 3*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrations.AutoMigrate(ctx, 3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate tables")
	}

	var sessions auth.SessionStore = auth.NopSessionStore{}
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
		sessions = auth.NewRedisSessionStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, tokens cannot be revoked before expiry")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	defer publisher.Close()

	codec, err := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token codec")
	}
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create password hasher")
	}

	// Initialize services
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo.FindCredentialsByEmail, userRepo.CreateUser, hasher, codec, sessions)
	todoService := service.NewTodoService(repository.NewTodoRepository(db), publisher)

	authHandler := api.NewAuthHandler(authService)
	todoHandler := api.NewTodoHandler(todoService)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperror.HTTPErrorHandler
	e.Validator = api.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root: cfg.StaticDir,
		Skipper: func(c echo.Context) bool {
			return api.IsAPIPath(c.Request().URL.Path)
		},
	}))

	// Routes
	api.RegisterRoutes(e, authHandler, todoHandler, auth.Gate(codec, sessions), api.NewAuthRateLimiter(cfg.RateLimit, cfg.RateBurst))

	// Start server
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error draining HTTP server")
	}
}
