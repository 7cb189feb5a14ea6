package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds process configuration resolved from the environment.
// Precedence: explicit env var > .env file (loaded by main) > default.
type Config struct {
	Port           string
	Env            string
	DataDir        string
	DatabaseDSN    string // postgres DSN; empty means sqlite file under DataDir
	SessionSecret  string
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 20 << 20 // mirrors the 20mb body limit of the hosting layer

func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "3000")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DataDir = getEnv("DATA_DIR", "storage")
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.SessionSecret = getEnv("SESSION_SECRET", "sona-secret")
	cfg.MaxUploadBytes = defaultMaxUploadBytes
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}
	return cfg
}

// UploadDir is the flat directory all uploaded files land in.
func (c Config) UploadDir() string { return filepath.Join(c.DataDir, "uploads") }

// SQLitePath is the default store file when no postgres DSN is configured.
func (c Config) SQLitePath() string { return filepath.Join(c.DataDir, "data.db") }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
