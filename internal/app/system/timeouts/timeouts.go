// Package timeouts holds the deadlines handlers put on store calls.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: listings
//   - Long: operations touching both collections (cascade deletes,
//     article create/delete with counter updates)
//
// Values start at the defaults below and may be overridden once at
// startup with Configure or ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

// Config holds timeout values. Zero fields are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Long: DefaultLong}
}

func Ping() time.Duration   { return Current().Ping }
func Short() time.Duration  { return Current().Short }
func Medium() time.Duration { return Current().Medium }
func Long() time.Duration   { return Current().Long }

// Current returns the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// Configure overrides the non-zero values in cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&cur.Ping, cfg.Ping)
	merge(&cur.Short, cfg.Short)
	merge(&cur.Medium, cfg.Medium)
	merge(&cur.Long, cfg.Long)
}

func merge(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores the defaults. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM and
// TIMEOUT_LONG (Go duration strings, e.g. "500ms", "15s"). Unset, invalid
// or non-positive values are ignored. Returns how many were applied.
func ConfigureFromEnv() int {
	var cfg Config
	applied := 0
	for _, e := range []struct {
		key string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &cfg.Ping},
		{"TIMEOUT_SHORT", &cfg.Short},
		{"TIMEOUT_MEDIUM", &cfg.Medium},
		{"TIMEOUT_LONG", &cfg.Long},
	} {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			applied++
		}
	}
	Configure(cfg)
	return applied
}

// WithTimeout is context.WithTimeout with a cancel func that logs when the
// deadline was hit, naming the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete user")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
