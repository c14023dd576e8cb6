package setup

import (
	"context"
	"log/slog"

	"myposts/app"
	"myposts/config"
	"myposts/database"
	"myposts/gateway"
	"myposts/notify"
	"myposts/services"
	"myposts/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitDatabase opens the posts database and creates the table if missing.
// The handle is closed again when the schema cannot be created.
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, db *database.DB, logger *slog.Logger) *app.App {
	repo := database.NewRepository(db)

	hub := notify.NewHub(logger, 16)
	hub.Start()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "myposts"),
	)

	posts := services.NewPostService(repo, validator.New(), hub)
	gw := gateway.New(posts, logger, gateway.NewMetrics(registry))

	application := app.New(cfg, db, repo, posts, gw, hub, registry, logger)
	logger.Info("application initialized with dependency injection")

	return application
}

// Shutdown performs graceful shutdown of all services. The hub stops first so
// open event streams end and server can drain; server may be nil when it
// never started serving.
func Shutdown(ctx context.Context, application *app.App, server *fiber.App, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application.Hub != nil {
		application.Hub.Stop()
	}

	if server != nil {
		if err := server.ShutdownWithContext(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		} else {
			logger.Info("server stopped")
		}
	}

	if application.DB != nil {
		if err := application.DB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Info("database closed")
	}
}
