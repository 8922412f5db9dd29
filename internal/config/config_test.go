package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", c.Server.Addr)
	}
	if c.Session.HeartbeatInterval != 30*time.Second {
		t.Errorf("HeartbeatInterval = %v", c.Session.HeartbeatInterval)
	}
	if c.Store.Driver != "none" {
		t.Errorf("Store.Driver = %q", c.Store.Driver)
	}
	if !c.Telemetry.Metrics || c.Telemetry.Tracing {
		t.Errorf("telemetry defaults = %+v", c.Telemetry)
	}
	if c.Log.Level != "info" || c.Log.Format != "text" {
		t.Errorf("log defaults = %+v", c.Log)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weft.yaml")
	data := []byte("server:\n  addr: \":9999\"\nstore:\n  driver: sqlite\n  path: /tmp/x.db\nlog:\n  format: json\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", c.Server.Addr)
	}
	if c.Store.Driver != "sqlite" || c.Store.Path != "/tmp/x.db" {
		t.Errorf("Store = %+v", c.Store)
	}
	if c.Log.Format != "json" {
		t.Errorf("Log.Format = %q", c.Log.Format)
	}
	// Untouched keys keep defaults.
	if c.Session.SendBuffer != 64 {
		t.Errorf("Session.SendBuffer = %d", c.Session.SendBuffer)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Load() with a missing explicit file did not fail")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WEFT_SERVER_ADDR", ":7070")
	t.Setenv("WEFT_LOG_LEVEL", "debug")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want env override", c.Server.Addr)
	}
	if c.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want env override", c.Log.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("WEFT_STORE_DRIVER", "postgres")
	if _, err := Load(""); err == nil {
		t.Errorf("unknown store driver accepted")
	}
}
