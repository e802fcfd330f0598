// Package config loads engine settings: built-in defaults, then an optional
// YAML file, then environment overrides. Later layers win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"tempo/internal/llm"
)

// Config carries every runtime knob for the engine and CLI.
type Config struct {
	LLM llm.Config `yaml:"llm"`

	// GenerativeDisabled turns off the model fallback entirely; the
	// deterministic parser then handles every input.
	GenerativeDisabled bool `yaml:"generative_disabled"`

	CacheSize       int `yaml:"cache_size"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LLM:             llm.DefaultConfig(),
		CacheSize:       128,
		CacheTTLSeconds: 300,
		LogLevel:        "info",
	}
}

// CacheTTL returns the cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

type loadOptions struct {
	envLookup func(string) (string, bool)
	readFile  func(string) ([]byte, error)
}

// Option customizes Load, primarily for tests.
type Option func(*loadOptions)

// WithEnvLookup replaces the environment source.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) { o.envLookup = lookup }
}

// WithFileReader replaces the config file reader.
func WithFileReader(read func(string) ([]byte, error)) Option {
	return func(o *loadOptions) { o.readFile = read }
}

// Load builds the effective configuration. path may be empty; a missing
// file is not an error, but a malformed one is.
func Load(path string, opts ...Option) (Config, error) {
	options := loadOptions{
		envLookup: os.LookupEnv,
		readFile:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Default()

	if path != "" {
		data, err := options.readFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, options.envLookup)
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("TEMPO_MODEL"); ok {
		cfg.LLM.Model = v
	}
	if v, ok := lookup("TEMPO_BASE_URL"); ok {
		cfg.LLM.BaseURL = v
	}
	if v, ok := lookup("TEMPO_TIMEOUT_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LLM.Timeout = n
		}
	}
	if v, ok := lookup("TEMPO_NO_LLM"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.GenerativeDisabled = b
		}
	}
	if v, ok := lookup("TEMPO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
