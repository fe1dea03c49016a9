package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Source != CatalogSourceFile {
		t.Errorf("catalog source = %q, want %q", cfg.Catalog.Source, CatalogSourceFile)
	}
	if cfg.Autocomplete.DefaultLimit != 5 {
		t.Errorf("autocomplete default limit = %d, want 5", cfg.Autocomplete.DefaultLimit)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  readTimeout: 5s
catalog:
  source: postgres
logging:
  level: debug
  format: text
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout = %v, want default 30s", cfg.Server.WriteTimeout)
	}
	if cfg.Catalog.Source != CatalogSourcePostgres {
		t.Errorf("catalog source = %q", cfg.Catalog.Source)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("logging format = %q", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SS_SERVER_PORT", "7777")
	t.Setenv("SS_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("SS_AUTOCOMPLETE_ENABLED", "false")
	t.Setenv("SS_CATALOG_PATH", "/data/studies.json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server port = %d, want 7777", cfg.Server.Port)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "b:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Autocomplete.Enabled {
		t.Error("autocomplete should be disabled by env")
	}
	if cfg.Catalog.Path != "/data/studies.json" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown source", "catalog:\n  source: s3\n"},
		{"file without path", "catalog:\n  source: file\n  path: \"\"\n"},
		{"bad limits", "autocomplete:\n  defaultLimit: 10\n  maxLimit: 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
