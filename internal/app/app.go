package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"thicket/server"
	servernet "thicket/server/internal/net"
	"thicket/server/logging"
)

// Run loads config, builds the logger, world, and hub, and serves until the
// context is cancelled. Config path comes from CONFIG_PATH (default
// config.yaml, missing file falls back to defaults); ADDR overrides the
// listen address.
func Run(ctx context.Context) error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	hub := server.NewHub(cfg, logger)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		ClientDir: cfg.ClientDir,
		Logger:    logger,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("server listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}
