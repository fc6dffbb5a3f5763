package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultPort = 9010

// Config holds all application configuration
type Config struct {
	// Server configuration
	Host            string
	Port            int
	ShutdownTimeout time.Duration

	// Geolocation databases. An empty path means the database is not configured.
	CityDBPath string
	ASNDBPath  string
	Locales    []string // name locale preference, primary first

	// Logging
	LogLevel  string
	LogPretty bool

	// Rate limiting (disabled when RateLimit is 0)
	RateLimitType   string // "memory" or "redis"
	RateLimit       int    // number of requests allowed per window
	RateLimitWindow int    // time window in seconds

	// Redis configuration (rate limiter backend)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MetricsEnabled bool
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnvAsPort("PORT", defaultPort),
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT", 3)) * time.Second,

		CityDBPath: strings.TrimSpace(os.Getenv("GEOIP_DB_CITY")),
		ASNDBPath:  strings.TrimSpace(os.Getenv("GEOIP_DB_ASN")),
		Locales:    getEnvAsList("GEOIP_LOCALES", []string{"en", "ko"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		RateLimitType:   getEnv("RATE_LIMITER_TYPE", "memory"),
		RateLimit:       getEnvAsInt("RATE_LIMIT", 0),
		RateLimitWindow: getEnvAsInt("RATE_LIMIT_WINDOW", 1),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}
}

// Addr returns the listen address in host:port form
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// RateLimitEnabled reports whether requests should pass through the limiter
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit > 0 && c.RateLimitWindow > 0
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsPort is getEnvAsInt restricted to the valid TCP port range
func getEnvAsPort(key string, defaultValue int) int {
	port := getEnvAsInt(key, defaultValue)
	if port <= 0 || port > 65535 {
		return defaultValue
	}
	return port
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma-separated variable, dropping blank entries
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
