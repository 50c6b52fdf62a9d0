// File path: internal/config/config.go

// Package config loads service configuration from an optional YAML file with
// environment variable overrides. Environment always wins, so a container
// deployment can run without any file at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/surveyforge/surveyforge/internal/llm"
)

// Config is the full service configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
	// CatalogPath is the SQLite file backing the reference catalog.
	// ":memory:" runs with the built-in seed only.
	CatalogPath string `yaml:"catalog_path"`
	// RedisAddr enables the shared Redis session store when set; empty keeps
	// sessions in process memory.
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	// SessionTTLHours bounds Redis session lifetime. Zero keeps the default.
	SessionTTLHours int `yaml:"session_ttl_hours"`

	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig mirrors the provider options; unset fields fall back to the
// provider package's environment defaults.
type LLMConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Addr:        ":8080",
		CatalogPath: "surveyforge.db",
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fine: env-only configuration.
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Addr, "SURVEYFORGE_ADDR")
	setString(&c.CatalogPath, "SURVEYFORGE_CATALOG_PATH")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.RedisDB, "REDIS_DB")
	setInt(&c.SessionTTLHours, "SESSION_TTL_HOURS")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setInt(&c.LLM.TimeoutSeconds, "LLM_TIMEOUT_SECONDS")
}

// LLMOptions merges the file-based LLM settings over the environment
// defaults (API keys only ever come from the environment).
func (c Config) LLMOptions() llm.Options {
	opts := llm.OptionsFromEnv()
	if c.LLM.Provider != "" {
		opts.Provider = c.LLM.Provider
	}
	if c.LLM.Model != "" {
		opts.Model = c.LLM.Model
	}
	if c.LLM.BaseURL != "" {
		opts.BaseURL = c.LLM.BaseURL
	}
	if c.LLM.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = c.LLM.TimeoutSeconds
	}
	return opts
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
