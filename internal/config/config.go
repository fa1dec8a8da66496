package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	APIBaseURL      string
	HTTPAddr        string
	TokenPath       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		APIBaseURL:      envOrDefault("API_BASE_URL", "http://localhost:3000/api"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", "127.0.0.1:8080"),
		TokenPath:       envOrDefault("TOKEN_PATH", defaultTokenPath()),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"http://localhost:5173"}),
	}
}

// LoadDotenv applies a .env file if one exists next to the binary's working
// directory. A missing file is not an error.
func LoadDotenv(logger *log.Logger) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Printf("load .env: %v", err)
		}
		return
	}
	if logger != nil {
		logger.Printf("loaded .env")
	}
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".storefront-token")
	}
	return filepath.Join(dir, "storefront", "token")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
