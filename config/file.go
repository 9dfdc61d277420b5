package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout:
//
//	cache:
//	  capacity: 1000
//	  time-to-live: 5m
//	  eviction: LRU
//
// Fields are strings so that "500" and "500ms" go through the same parsers
// as session parameters.
type fileConfig struct {
	Cache struct {
		Capacity *string `yaml:"capacity"`
		TTL      *string `yaml:"time-to-live"`
		Eviction *string `yaml:"eviction"`
	} `yaml:"cache"`
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of Default.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	params := make(map[string]string, 3)
	if fc.Cache.Capacity != nil {
		params[ParamCapacity] = *fc.Cache.Capacity
	}
	if fc.Cache.TTL != nil {
		params[ParamTTL] = *fc.Cache.TTL
	}
	if fc.Cache.Eviction != nil {
		params[ParamEviction] = *fc.Cache.Eviction
	}
	return FromParameters(params)
}

// ApplyEnv overrides c from environment variables.
// Unset variables are ignored; set-but-invalid ones are errors.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	var errs []error

	if v, ok := lookup(EnvCapacity); ok {
		n, err := ParseCapacity(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCapacity, err))
		} else {
			c.Capacity = n
		}
	}
	if v, ok := lookup(EnvTTL); ok {
		d, err := ParseTTL(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvTTL, err))
		} else {
			c.TTL = d
		}
	}
	if v, ok := lookup(EnvEviction); ok {
		p, err := ParseEviction(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvEviction, err))
		} else {
			c.Eviction = p
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return c, nil
}
