package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/windlant/mcp-client/internal/app"
	"github.com/windlant/mcp-client/internal/config"
	"github.com/windlant/mcp-client/internal/gateway"
	"github.com/windlant/mcp-client/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("MCP_CLIENT_CONFIG"))
	if err != nil {
		logging.InitLogger(logging.ParseLevel("error"), "text", os.Stderr).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.InitLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)

	a, err := app.NewAgent(cfg, app.Dialer(cfg, os.Stderr), logger)
	if err != nil {
		logger.Error("failed to initialize agent", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Target != "" {
		if _, err := a.Connect(ctx, cfg.Server.Target); err != nil {
			logger.Warn("initial connect failed", "target", cfg.Server.Target, "error", err)
		}
	}

	app.PrintBanner(os.Stdout, "gateway")
	srv := &http.Server{
		Addr:              cfg.Gateway.Addr,
		Handler:           gateway.New(a, gateway.Options{
			Logger:        logger,
			AllowCommands: cfg.Gateway.AllowCommands,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("gateway listening", "addr", cfg.Gateway.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}
