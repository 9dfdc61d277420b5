// Package config builds and validates object cache configuration from session
// parameter maps, YAML files and environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/krisalay/object-cache/eviction"
)

// Session parameter names understood by FromParameters.
const (
	// ParamCapacity is the maximum number of live entries. 0 means unbounded.
	ParamCapacity = "cache.objects.size"

	// ParamTTL is the entry lifetime, integer milliseconds or a duration
	// string such as "500ms". 0 means entries never expire.
	ParamTTL = "cache.objects.ttl"

	// ParamEviction selects the eviction policy (LRU or FIFO). LRU is the
	// default and lets a read protect an entry from the next eviction. FIFO
	// ignores reads and evicts in insertion order, so a recently read entry
	// can still be the next victim.
	ParamEviction = "cache.objects.eviction"
)

// Environment variables understood by ApplyEnv.
const (
	EnvCapacity = "OBJECTCACHE_CAPACITY"
	EnvTTL      = "OBJECTCACHE_TTL"
	EnvEviction = "OBJECTCACHE_EVICTION"
)

// Config is fixed for the lifetime of a cache.
type Config struct {
	// Capacity is the maximum number of live entries (0 = unbounded).
	Capacity int

	// TTL is the lifetime of an entry from its insertion (0 = never expire).
	TTL time.Duration

	// Eviction selects which entry goes first when Capacity is exceeded.
	Eviction eviction.PolicyType
}

// Default returns an unbounded, never-expiring LRU configuration.
func Default() Config {
	return Config{Eviction: eviction.LRU}
}

// Validate rejects negative limits and unknown policies.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.Capacity)
	}
	if c.TTL < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, c.TTL)
	}
	if _, err := eviction.ParsePolicyType(string(c.Eviction)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEviction, err)
	}
	return nil
}

// Bounded reports whether eviction can ever happen.
func (c Config) Bounded() bool { return c.Capacity > 0 }

// FromParameters reads a session parameter map. Missing keys keep their
// defaults; present keys must parse.
func FromParameters(params map[string]string) (Config, error) {
	cfg := Default()

	if v, ok := params[ParamCapacity]; ok {
		n, err := ParseCapacity(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Capacity = n
	}

	if v, ok := params[ParamTTL]; ok {
		d, err := ParseTTL(v)
		if err != nil {
			return Config{}, err
		}
		cfg.TTL = d
	}

	if v, ok := params[ParamEviction]; ok {
		p, err := ParseEviction(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Eviction = p
	}

	return cfg, nil
}

// ParseCapacity parses a non-negative integer. Blank means 0.
func ParseCapacity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCapacity, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidCapacity, n)
	}
	return n, nil
}

// ParseTTL parses a TTL string in two formats:
// - Integer milliseconds: "500".
// - Duration string: "500ms", "2s", "1h30m".
//
// Blank means 0 (never expire).
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, ms)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is neither milliseconds nor a duration", ErrInvalidTTL, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidTTL, d)
	}
	return d, nil
}

// ParseEviction parses a policy name.
func ParseEviction(s string) (eviction.PolicyType, error) {
	p, err := eviction.ParsePolicyType(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEviction, err)
	}
	return p, nil
}
