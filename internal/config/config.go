package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port        string
	MetricsPort string
	AdminPIN    string
	DatabaseURL string // empty means the in-memory catalog
	Env         string
}

// Load reads an optional .env file and returns a Config with env-var
// values, falling back to development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Not a failure: production relies on real environment variables.
		zap.L().Debug("no .env file found, relying on environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		AdminPIN:    getEnv("ADMIN_PIN", "4242"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Env:         getEnv("ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
