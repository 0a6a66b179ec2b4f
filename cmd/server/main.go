package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alertmgr/backend/internal/application/services"
	"github.com/alertmgr/backend/internal/config"
	"github.com/alertmgr/backend/internal/infrastructure/biclient"
	"github.com/alertmgr/backend/internal/infrastructure/database"
	"github.com/alertmgr/backend/internal/infrastructure/persistence"
	"github.com/alertmgr/backend/internal/interfaces/middleware"
	"github.com/alertmgr/backend/internal/interfaces/rest"
	"github.com/alertmgr/backend/pkg/alerting"
	"github.com/alertmgr/backend/pkg/auth"
	"github.com/alertmgr/backend/pkg/expression"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	envFile := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile, *configPath)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := setupLogger(cfg.Log)

	if cfg.Auth.JWTSecret != "" {
		auth.SetSecret(cfg.Auth.JWTSecret)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	conn, err := database.Open(ctx, cfg.Database)
	if err != nil {
		cancel()
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to connect to database")
	}
	if err := conn.Migrate(ctx); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("Failed to apply migrations")
	}
	cancel()
	defer conn.Close()
	logger.Info().Str("driver", conn.Driver()).Msg("Database ready")

	store := persistence.NewAlertRepository(conn.DB())
	bi := biclient.New(cfg.BI, logger)
	evaluator := alerting.NewEvaluator(expression.NewEngine())
	if err := evaluator.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid alert conditions")
	}

	handlers := rest.Handlers{
		Alerts:   rest.NewAlertHandler(services.NewAlertService(store, bi, evaluator, logger)),
		Editing:  rest.NewEditingHandler(services.NewEditingService(store, logger)),
		Fields:   rest.NewFieldHandler(services.NewFieldService(bi, logger)),
		Schedule: rest.NewScheduleHandler(),
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rest.RegisterRoutes(router.Group("/api"), handlers, middleware.RequireAuth(nil))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("bi", cfg.BI.BaseURL).Msg("Alert manager listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}

func setupLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stdout
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "alertmgr").Logger()
}
