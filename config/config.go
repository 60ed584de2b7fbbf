package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned when a fetch is attempted without proxy credentials.
var ErrMissingCredentials = errors.New("proxy credentials not configured")

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ProxyUsername string
	ProxyPassword string
	ProxyEndpoint string
	BaseURL       string

	DataDir      string
	CompletePath string
	Brands       []string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	RequestTimeout time.Duration

	DashboardAddr string
	PostgresDSN   string
	CSVOutputPath string
	ChromeBin     string
	LogLevel      string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ProxyUsername: getEnv("PROXY_USERNAME", os.Getenv("USERNAME")),
		ProxyPassword: getEnv("PROXY_PASSWORD", os.Getenv("PASSWORD")),
		ProxyEndpoint: getEnv("PROXY_ENDPOINT", "https://realtime.oxylabs.io/v1/queries"),
		BaseURL:       getEnv("BASE_URL", "https://www.cars.com/research/"),

		DataDir:      getEnv("DATA_DIR", "data"),
		CompletePath: getEnv("COMPLETE_PATH", "complete.json"),
		Brands:       getEnvList("BRANDS"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 500),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),

		DashboardAddr: getEnv("DASHBOARD_ADDR", ":8501"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/listings.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// ValidateFetch reports missing configuration needed before any outbound
// fetch. Offline commands never call it.
func (c *Config) ValidateFetch() error {
	var missing []string
	if c.ProxyUsername == "" {
		missing = append(missing, "USERNAME")
	}
	if c.ProxyPassword == "" {
		missing = append(missing, "PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s in the environment or .env file",
			ErrMissingCredentials, strings.Join(missing, " and "))
	}
	if c.ProxyEndpoint == "" || c.BaseURL == "" {
		return errors.New("config: PROXY_ENDPOINT and BASE_URL must not be empty")
	}
	return nil
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
