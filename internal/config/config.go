package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"surveysynth/internal/api"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	API          api.Config
	DataPath     string
	LogDir       string
	PollInterval time.Duration
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "15"))
	pollSecs, _ := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "5"))

	cfg := &AppConfig{
		API: api.Config{
			BaseURL:        getEnv("SURVEYSYNTH_API_URL", ""),
			RequestTimeout: time.Duration(timeoutSecs) * time.Second,
		},
		DataPath:     dataPath,
		LogDir:       logDir,
		PollInterval: time.Duration(pollSecs) * time.Second,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
