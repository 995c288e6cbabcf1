package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	DatabaseURL string

	// AssetsDir is searched before the embedded assets.
	AssetsDir     string
	TuningFile    string
	MazeFile      string
	ReleaseScript string
	WatchAssets   bool

	BroadcastRate int
	Lives         int
}

func Load() *Config {
	return &Config{
		Port:          getEnvInt("PORT", 8080),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AssetsDir:     getEnv("ASSETS_DIR", "assets"),
		TuningFile:    getEnv("TUNING_FILE", "tuning.yaml"),
		MazeFile:      getEnv("MAZE_FILE", ""),
		ReleaseScript: getEnv("RELEASE_SCRIPT", ""),
		WatchAssets:   getEnvBool("WATCH_ASSETS", false),
		BroadcastRate: getEnvInt("BROADCAST_RATE", 20),
		Lives:         getEnvInt("LIVES", 3),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
