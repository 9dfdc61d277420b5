package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/krisalay/object-cache/config"
)

// flags shared by every subcommand.
type rootFlags struct {
	configPath string
	capacity   string
	ttl        string
	eviction   string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "objectcache",
		Short:         "Exercise the repository object cache",
		Long:          "objectcache drives the object cache against an in-memory repository to show hits, misses, expiry and eviction.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file with a cache: section")
	pf.StringVar(&f.capacity, "capacity", "", "maximum live entries (0 = unbounded)")
	pf.StringVar(&f.ttl, "ttl", "", "entry lifetime, milliseconds or duration (0 = never expire)")
	pf.StringVar(&f.eviction, "eviction", "", "eviction policy: LRU or FIFO")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newDemoCmd(f), newBenchCmd(f))
	return cmd
}

// newLogger builds a console logger on stderr.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}

// resolveConfig layers defaults, the config file, environment variables and
// flags, in that order.
func (f *rootFlags) resolveConfig(base config.Config) (config.Config, error) {
	cfg := base
	if f.configPath != "" {
		fileCfg, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg
	}

	cfg, err := cfg.ApplyEnv(os.LookupEnv)
	if err != nil {
		return config.Config{}, err
	}

	params := make(map[string]string)
	if f.capacity != "" {
		params[config.ParamCapacity] = f.capacity
	}
	if f.ttl != "" {
		params[config.ParamTTL] = f.ttl
	}
	if f.eviction != "" {
		params[config.ParamEviction] = f.eviction
	}
	if len(params) > 0 {
		flagCfg, err := config.FromParameters(params)
		if err != nil {
			return config.Config{}, err
		}
		if _, ok := params[config.ParamCapacity]; ok {
			cfg.Capacity = flagCfg.Capacity
		}
		if _, ok := params[config.ParamTTL]; ok {
			cfg.TTL = flagCfg.TTL
		}
		if _, ok := params[config.ParamEviction]; ok {
			cfg.Eviction = flagCfg.Eviction
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
