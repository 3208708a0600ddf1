package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 3333 {
		t.Errorf("Expected default port 3333, got %d", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:3333" {
		t.Errorf("Expected addr 0.0.0.0:3333, got %s", cfg.Addr())
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Expected development env, got %s", cfg.Env)
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load([]string{"-port", "8080", "-env", "production", "-reuse-port"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Error("Expected production env")
	}
	if !cfg.ReusePort {
		t.Error("Expected reuse-port to be set")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SAABA_PORT", "9090")
	t.Setenv("SAABA_READ_TIMEOUT", "3")
	t.Setenv("SAABA_LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-port", "8080"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Expected env port 9090, got %d", cfg.Port)
	}
	if cfg.ReadTimeout != 3 {
		t.Errorf("Expected read timeout 3, got %d", cfg.ReadTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadJSONFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "saaba.json")
	data := `{"host": "127.0.0.1", "write": {"timeout": 7}, "static": {"dir": "./public"}, "reuse": {"port": true}}`
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load([]string{"-config", file})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Host)
	}
	if cfg.WriteTimeout != 7 {
		t.Errorf("Expected write timeout 7, got %d", cfg.WriteTimeout)
	}
	if cfg.StaticDir != "./public" {
		t.Errorf("Expected static dir ./public, got %s", cfg.StaticDir)
	}
	if !cfg.ReusePort {
		t.Error("Expected reuse port from file")
	}
}

func TestLoadMiddlewareSettings(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.MonitorEnabled || cfg.CORSOrigin != "" || cfg.RateLimit != 0 {
		t.Errorf("Unexpected defaults: monitor=%v cors=%q rate=%d", cfg.MonitorEnabled, cfg.CORSOrigin, cfg.RateLimit)
	}

	file := filepath.Join(t.TempDir(), "saaba.json")
	data := `{"monitor": {"enabled": false}, "cors": {"origin": "*"}, "rate": {"limit": 50}}`
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load([]string{"-config", file})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MonitorEnabled || cfg.CORSOrigin != "*" || cfg.RateLimit != 50 {
		t.Errorf("Unexpected file values: monitor=%v cors=%q rate=%d", cfg.MonitorEnabled, cfg.CORSOrigin, cfg.RateLimit)
	}

	t.Setenv("SAABA_RATE_LIMIT", "5")
	t.Setenv("SAABA_MONITOR_ENABLED", "true")
	t.Setenv("SAABA_CORS_ORIGIN", "https://example.com")
	cfg, err = Load([]string{"-config", file})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.MonitorEnabled || cfg.CORSOrigin != "https://example.com" || cfg.RateLimit != 5 {
		t.Errorf("Unexpected env values: monitor=%v cors=%q rate=%d", cfg.MonitorEnabled, cfg.CORSOrigin, cfg.RateLimit)
	}
}

func TestManagerUnmarshalSkipsDashTag(t *testing.T) {
	m := NewManager()
	m.Set("-", "ignored")
	m.Set("name", "kept")

	var target struct {
		Name    string `config:"name"`
		Skipped string `config:"-"`
	}
	if err := m.Unmarshal("", &target); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if target.Name != "kept" || target.Skipped != "" {
		t.Errorf("Unexpected target %+v", target)
	}
}

func TestLoadBadEnvValue(t *testing.T) {
	t.Setenv("SAABA_PORT", "not-a-number")

	if _, err := Load(nil); err == nil {
		t.Error("Expected error for non-numeric port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestManagerGetters(t *testing.T) {
	m := NewManager()
	m.Set("name", "saaba")
	m.Set("port", "8080")
	m.Set("debug", "yes")

	if got := m.GetString("name"); got != "saaba" {
		t.Errorf("Expected saaba, got %s", got)
	}
	if got := m.GetString("missing", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}
	if got := m.GetInt("port"); got != 8080 {
		t.Errorf("Expected 8080, got %d", got)
	}
	if got := m.GetInt("missing", 42); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if !m.GetBool("debug") {
		t.Error("Expected debug true")
	}
}

func TestManagerUnmarshalRejectsNonPointer(t *testing.T) {
	m := NewManager()
	if err := m.Unmarshal("", Config{}); err == nil {
		t.Error("Expected error for non-pointer target")
	}
}
