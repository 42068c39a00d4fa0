package transport

import (
	"math"
	"time"
)

// ReconnectionConfig holds configuration for reconnection logic.
type ReconnectionConfig struct {
	InitialBackoff    time.Duration // Initial backoff delay (default: 500ms)
	MaxBackoff        time.Duration // Maximum backoff delay (default: 60s)
	BackoffMultiplier float64       // Backoff multiplier (default: 1.5)
	MaxFailures       int           // Consecutive failures before the circuit breaker opens (default: 5)
	OpenTimeout       time.Duration // How long the breaker stays open before a probe (default: 30s)
}

// DefaultReconnectionConfig returns default reconnection configuration.
func DefaultReconnectionConfig() ReconnectionConfig {
	return ReconnectionConfig{
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        60 * time.Second,
		BackoffMultiplier: 1.5,
		MaxFailures:       5,
		OpenTimeout:       30 * time.Second,
	}
}

// CalculateBackoff calculates the backoff duration based on attempt number.
// Uses exponential backoff capped at MaxBackoff.
func CalculateBackoff(cfg ReconnectionConfig, attempt int) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffMultiplier, float64(attempt))

	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}

	return time.Duration(backoff)
}
