package config

import (
	"os"
	"strconv"
)

// Snapshot store backends
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application-level configuration
type Config struct {
	// Server
	Port    string
	BaseURL string // absolute base URL used by the PDF renderer to reach our own endpoints

	// Supplier catalog
	SupplierURL   string
	ScrapeTimeout int // seconds for a full scrape run
	MaxRetries    int

	// Chrome
	ChromePath string

	// Snapshot persistence
	SnapshotBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// Load reads configuration from environment variables or falls back to defaults.
// Database variables (DATABASE_URL / DB_*) stay in the db package, same as before.
func Load() *Config {
	port := getEnv("PORT", "8080")
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}

	return &Config{
		Port:            port,
		BaseURL:         getEnv("BASE_URL", "http://localhost:"+port),
		SupplierURL:     getEnv("SUPPLIER_URL", "https://www.anegocios.com.mx/99/PLAZA_TELCEL"),
		ScrapeTimeout:   getEnvInt("SCRAPE_TIMEOUT_SECONDS", 60),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		ChromePath:      getEnv("CHROME_PATH", ""),
		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", BackendPostgres),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
