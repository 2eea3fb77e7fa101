package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file if present, the same way the teacher's
// main/main.go does with godotenv.Load() at process start. Missing .env
// files are not fatal: this mirrors production deployments where
// configuration comes from the real environment instead of a dotfile.
func LoadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Default().Debug("no .env file loaded", slog.String("path", path), slog.Any("error", err))
	}
}

// GetEnv reads an environment variable, falling back to def when unset or
// empty, matching the teacher's utils.GetEnv helper used throughout
// fileformat and db.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Env bundles the process-environment knobs external collaborators read:
// which cache backend to use and where the Postgres cache (if any) lives.
type Env struct {
	CacheDir    string
	CacheKind   string // "file", "postgres", or "none"
	PostgresDSN string
}

// LoadEnvConfig reads Env from the process environment with the same
// GetEnv-with-default pattern as the teacher's db.NewDBClient.
func LoadEnvConfig() Env {
	return Env{
		CacheDir:    GetEnv("SHAZOOM_CACHE_DIR", "cache"),
		CacheKind:   GetEnv("SHAZOOM_CACHE_KIND", "file"),
		PostgresDSN: GetEnv("SHAZOOM_POSTGRES_DSN", ""),
	}
}
