package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("Expected default HTTP addr :8000, got %s", cfg.HTTPAddr)
	}
	if cfg.DBPath != "" {
		t.Errorf("Expected empty DB path, got %s", cfg.DBPath)
	}
	if !cfg.Seed {
		t.Error("Expected seeding enabled by default")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("Expected CORS origins [*], got %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PARTCOUNTER_HTTP_ADDR":        "127.0.0.1:9000",
		"PARTCOUNTER_DB_PATH":          "/tmp/parts.db",
		"PARTCOUNTER_SEED":             "false",
		"PARTCOUNTER_CORS_ORIGINS":     "http://a.test,http://b.test",
		"PARTCOUNTER_SHUTDOWN_TIMEOUT": "3s",
		"PARTCOUNTER_LOG_MODE":         "production",
	})
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("Unexpected HTTP addr %s", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/parts.db" {
		t.Errorf("Unexpected DB path %s", cfg.DBPath)
	}
	if cfg.Seed {
		t.Error("Expected seeding disabled")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("Unexpected CORS origins %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("Unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
	if cfg.LogMode != "production" {
		t.Errorf("Unexpected log mode %s", cfg.LogMode)
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		vars map[string]string
	}{
		{"bad duration", map[string]string{"PARTCOUNTER_SHUTDOWN_TIMEOUT": "soon"}},
		{"zero timeout", map[string]string{"PARTCOUNTER_SHUTDOWN_TIMEOUT": "0s"}},
		{"bad bool", map[string]string{"PARTCOUNTER_SEED": "maybe"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFrom(tc.vars); err == nil {
				t.Fatal("Expected error, got none")
			}
		})
	}
}
