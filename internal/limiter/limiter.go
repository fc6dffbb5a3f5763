package limiter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geoapi/geo-service/internal/logger"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	// Allow reports whether the request from key is within the limit
	Allow(ctx context.Context, key string) bool

	// Close releases resources (Redis connections)
	Close() error
}

// Config holds configuration for creating a rate limiter
type Config struct {
	Type   string        // "memory" or "redis"
	Limit  int           // requests allowed per window
	Window time.Duration // window length

	// Redis-specific config
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New creates a rate limiter based on the configuration
func New(cfg Config, log *logger.Logger) (Limiter, error) {
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return nil, fmt.Errorf("invalid rate limit: %d per %s", cfg.Limit, cfg.Window)
	}
	if log == nil {
		log = logger.NewDefault()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "memory", "":
		return NewMemoryLimiter(cfg.Limit, cfg.Window), nil

	case "redis":
		lim, err := NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.Limit, cfg.Window, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis limiter: %w", err)
		}
		return lim, nil

	default:
		return nil, fmt.Errorf("unknown rate limiter type: %s (supported: 'memory', 'redis')", cfg.Type)
	}
}
