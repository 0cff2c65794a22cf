package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bigo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Analysis.MaxTokens != 100000 || cfg.Analysis.MaxDepth != 256 {
		t.Errorf("analysis defaults = %+v", cfg.Analysis)
	}
	if cfg.LLM.Enabled {
		t.Error("LLM enabled by default")
	}
	if got := cfg.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9000
analysis:
  max_tokens: 5000
llm:
  enabled: true
  model: gpt-4o
  api_key_env: TEST_BIGO_KEY
  timeout: 10s
cache:
  enabled: true
  in_memory: false
  path: /tmp/bigo-cache
  ttl: 1h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Analysis.MaxTokens != 5000 {
		t.Errorf("MaxTokens = %d, want 5000", cfg.Analysis.MaxTokens)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Analysis.MaxDepth != 256 {
		t.Errorf("MaxDepth = %d, want default 256", cfg.Analysis.MaxDepth)
	}
	if cfg.LLM.Timeout != 10*time.Second {
		t.Errorf("LLM.Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "server:\n  prot: 9000\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted unknown key, want error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad port", "server:\n  port: 70000\n", "out of range"},
		{"persistent cache without path", "cache:\n  enabled: true\n  in_memory: false\n", "cache.path"},
		{"llm without key env", "llm:\n  enabled: true\n  api_key_env: \"\"\n", "api_key_env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKeyEnv = "TEST_BIGO_API_KEY"
	t.Setenv("TEST_BIGO_API_KEY", "sk-abc")
	if got := cfg.APIKey(); got != "sk-abc" {
		t.Errorf("APIKey() = %q", got)
	}
}
