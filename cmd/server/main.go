package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"tickerlookup/internal/app"
	"tickerlookup/internal/config"
	"tickerlookup/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := app.InitLogger(cfg, "tickerlookup-server", false); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup")
	}
	defer a.Close()

	accessDir := ""
	if cfg.Log.FileEnabled {
		accessDir = cfg.Log.Dir
	}
	access := logger.NewAccessLogger(accessDir, cfg.Log.RotationSize, cfg.Log.RetentionDays)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(a.Service, access),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Backend).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
