package config

import (
	"fmt"
	"time"
)

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
}

func loadRateLimit() (RateLimitConfig, error) {
	cfg := RateLimitConfig{
		Enabled:      parseBoolEnv("RATE_LIMIT_ENABLED", "true"),
		Capacity:     parseIntEnv("RATE_LIMIT_CAPACITY", 60),
		RefillTokens: parseIntEnv("RATE_LIMIT_REFILL_TOKENS", 1),
		KeyStrategy:  getEnv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:       getEnv("RATE_LIMIT_PREFIX", "rl"),
	}

	var err error
	if cfg.RefillInterval, err = parseDurationEnv("RATE_LIMIT_REFILL_INTERVAL", "1s"); err != nil {
		return cfg, err
	}
	if cfg.TTL, err = parseDurationEnv("RATE_LIMIT_TTL", "10m"); err != nil {
		return cfg, err
	}

	if cfg.Capacity < 1 {
		return cfg, fmt.Errorf("RATE_LIMIT_CAPACITY must be >= 1")
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// the bucket must outlive a full refill cycle
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg, nil
}
