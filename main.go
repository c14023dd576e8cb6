package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myposts/config"
	"myposts/config/setup"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	// The store must be usable before any UI can connect
	db, err := setup.InitDatabase(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to initialize database, quitting", "path", cfg.DBPath, "error", err)
		return 1
	}

	application := setup.InitApp(cfg, db, logger)

	fiberApp := setup.NewFiberApp(cfg.IsProduction(), logger)
	setup.ApplyMiddleware(fiberApp, application)
	setup.RegisterRoutes(fiberApp, application)

	ln, err := setup.Listen(cfg.ListenAddr)
	if err != nil {
		logger.Error("failed to listen", "addr", cfg.ListenAddr, "error", err)
		setup.Shutdown(context.Background(), application, nil, logger)
		return 1
	}

	logger.Info("starting server", "addr", cfg.ListenAddr, "env", cfg.Env)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- fiberApp.Listener(ln)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	code := 0
	select {
	case <-quit:
		logger.Info("shutting down server gracefully")
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
			code = 1
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	setup.Shutdown(ctx, application, fiberApp, logger)
	return code
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development",
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
