package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/expense-tracker/backend/internal/config"
	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/router"
	"github.com/expense-tracker/backend/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	seed := flag.Bool("seed", false, "create the default categories if there are no categories yet")
	flag.Parse()

	cfg := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	err := cfg.Validate()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the directory for the SQLite database
	if models.DialectOf(cfg.DatabaseURL) == models.SQLite {
		err = os.MkdirAll(filepath.Dir(cfg.DatabaseURL), os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	err = models.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	defaults := models.UserDefaults{Name: cfg.DefaultUserName, Email: cfg.DefaultUserEmail}
	_, err = models.EnsureUser(models.DB, defaults)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to provision the user profile")
	}

	if *seed {
		created, err := models.Seed(models.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed categories")
		}
		log.Info().Int("categories", created).Msg("Seed")
	}

	store, closeStore, err := settingsStore(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer closeStore()

	r, teardown, err := router.Config(cfg.URL(), router.Options{
		AllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:  cfg.EnablePprof,
	})
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"), v1.Dependencies{
		Settings:     store,
		UserDefaults: defaults,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("backend startup complete")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	sqlDB, err := models.DB.DB()
	if err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("backend shutdown complete")
}

// settingsStore returns the Redis store if REDIS_URL is set and the
// database store otherwise.
func settingsStore(cfg *config.Config) (settings.Store, func(), error) {
	if cfg.RedisURL == "" {
		return settings.NewDatabaseStore(models.DB), func() {}, nil
	}

	store, err := settings.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Msg("Storing settings in Redis")
	return store, func() { store.Close() }, nil
}
