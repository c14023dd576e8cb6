package app

import (
	"log/slog"

	"myposts/config"
	"myposts/database"
	"myposts/gateway"
	"myposts/notify"
	"myposts/services"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config   *config.Config
	DB       *database.DB
	Repo     *database.Repository
	Posts    *services.PostService
	Gateway  *gateway.Gateway
	Hub      *notify.Hub
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, db *database.DB, repo *database.Repository, posts *services.PostService, gw *gateway.Gateway, hub *notify.Hub, registry *prometheus.Registry, logger *slog.Logger) *App {
	return &App{
		Config:   cfg,
		DB:       db,
		Repo:     repo,
		Posts:    posts,
		Gateway:  gw,
		Hub:      hub,
		Registry: registry,
		Logger:   logger,
	}
}
