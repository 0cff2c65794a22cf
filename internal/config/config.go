// Package config loads the service configuration for the analyzer
// server and CLI from a YAML file, with environment overrides for
// secrets.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// maxFileSize caps the config file read. A service config has no
// business being larger than this.
const maxFileSize = 1 << 20

// Config is the full service configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	Analysis Analysis `yaml:"analysis"`
	LLM      LLM      `yaml:"llm"`
	Cache    Cache    `yaml:"cache"`
}

// Server configures the HTTP listener.
type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Analysis configures the deterministic pipeline's resource budgets.
type Analysis struct {
	MaxTokens      int `yaml:"max_tokens"`
	MaxDepth       int `yaml:"max_depth"`
	MaxSourceBytes int `yaml:"max_source_bytes"`
}

// LLM configures the optional second-opinion validator.
type LLM struct {
	Enabled     bool          `yaml:"enabled"`
	Model       string        `yaml:"model"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Temperature float32       `yaml:"temperature"`
	MaxRetries  int           `yaml:"max_retries"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Cache configures the response store.
type Cache struct {
	Enabled  bool          `yaml:"enabled"`
	Path     string        `yaml:"path"`
	InMemory bool          `yaml:"in_memory"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Analysis: Analysis{
			MaxTokens:      100000,
			MaxDepth:       256,
			MaxSourceBytes: 1 << 20,
		},
		LLM: LLM{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   30 * time.Second,
		},
		Cache: Cache{
			Enabled:  true,
			InMemory: true,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
// Unknown keys are rejected so typos fail loudly at startup.
func Load(path string) (Config, error) {
	cfg := Default()

	fi, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if fi.Size() > maxFileSize {
		return cfg, fmt.Errorf("config: %s is %d bytes, limit is %d", path, fi.Size(), maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// APIKey resolves the LLM API key from the configured environment
// variable. Keys never live in the config file itself.
func (c Config) APIKey() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.LLM.APIKeyEnv)
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Analysis.MaxSourceBytes < 0 {
		return fmt.Errorf("config: analysis.max_source_bytes must not be negative")
	}
	if c.Cache.Enabled && !c.Cache.InMemory && c.Cache.Path == "" {
		return fmt.Errorf("config: cache.path required when cache is persistent")
	}
	if c.LLM.Enabled && c.LLM.APIKeyEnv == "" {
		return fmt.Errorf("config: llm.api_key_env required when llm is enabled")
	}
	return nil
}
