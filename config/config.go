package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	appDirName    = "myposts"
	defaultDBFile = "myposts.db"
	socketFile    = "myposts.sock"
)

type Config struct {
	Env             string
	LogLevel        string
	DataDir         string
	DBPath          string
	ListenAddr      string
	CORSOrigins     string
	EventsHeartbeat time.Duration
}

// Load reads .env (if present) and the environment into a new Config
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	heartbeat, err := time.ParseDuration(GetEnv("EVENTS_HEARTBEAT", "15s"))
	if err != nil || heartbeat <= 0 {
		return nil, fmt.Errorf("invalid EVENTS_HEARTBEAT %q", GetEnv("EVENTS_HEARTBEAT", ""))
	}

	dbFile := GetEnv("DB_FILE", defaultDBFile)
	if filepath.Base(dbFile) != dbFile {
		return nil, fmt.Errorf("DB_FILE must be a plain file name, got %q", dbFile)
	}

	cfg := &Config{
		Env:             GetEnv("ENV", "development"),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, dbFile),
		ListenAddr:      GetEnv("LISTEN_ADDR", "unix:"+filepath.Join(dataDir, socketFile)),
		CORSOrigins:     GetEnv("CORS_ORIGINS", "http://localhost:4200"),
		EventsHeartbeat: heartbeat,
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// resolveDataDir resolves the per-user application data directory
func resolveDataDir() (string, error) {
	if dir := GetEnv("DATA_DIR", ""); dir != "" {
		return filepath.Abs(dir)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(errors.New("cannot locate user data directory, set DATA_DIR"), err)
	}
	return filepath.Join(base, appDirName), nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
