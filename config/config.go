package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath   string
	HTTPAddr   string
	SalesTable string

	LoaderCacheSize     int
	OverviewPreviewRows int

	MapDefaultLat  float64
	MapDefaultLong float64
	MapZoom        int

	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	ChromeBin           string
	SnapshotConcurrency int
	SnapshotRateLimitMs int
	MaxRetries          int

	LogDebug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataPath:   getEnv("DATA_PATH", "kc_house_data.csv"),
		HTTPAddr:   getEnv("HTTP_ADDR", ":8501"),
		SalesTable: getEnv("SALES_TABLE", "kc_house_data"),

		LoaderCacheSize:     getEnvInt("LOADER_CACHE_SIZE", 8),
		OverviewPreviewRows: getEnvInt("OVERVIEW_PREVIEW_ROWS", 200),

		// King County, WA
		MapDefaultLat:  getEnvFloat("MAP_DEFAULT_LAT", 47.5480),
		MapDefaultLong: getEnvFloat("MAP_DEFAULT_LONG", -121.9836),
		MapZoom:        getEnvInt("MAP_ZOOM", 10),

		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3PathStyle: getEnvBool("S3_PATH_STYLE", false),

		ChromeBin:           getEnv("CHROME_BIN", ""),
		SnapshotConcurrency: getEnvInt("SNAPSHOT_CONCURRENCY", 2),
		SnapshotRateLimitMs: getEnvInt("SNAPSHOT_RATE_LIMIT_MS", 0),
		MaxRetries:          getEnvInt("MAX_RETRIES", 3),

		LogDebug: getEnvBool("LOG_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
