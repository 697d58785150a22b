package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "https://api.redseam.redberryinternship.ge/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Checkout.Delivery != 5 {
		t.Errorf("Delivery = %v, want 5", cfg.Checkout.Delivery)
	}
	if cfg.GetAPITimeout() != 30*time.Second {
		t.Errorf("timeout = %v", cfg.GetAPITimeout())
	}
	if cfg.Logging.Debug {
		t.Error("debug should default off")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "redseam" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://localhost:9999/api"
	cfg.API.Timeout = "5s"
	cfg.Checkout.Delivery = 7.5
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.API.BaseURL != "http://localhost:9999/api" {
		t.Errorf("BaseURL = %q", loaded.API.BaseURL)
	}
	if loaded.Checkout.Delivery != 7.5 {
		t.Errorf("Delivery = %v", loaded.Checkout.Delivery)
	}
	if loaded.GetAPITimeout() != 5*time.Second {
		t.Errorf("timeout = %v", loaded.GetAPITimeout())
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [not: a mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REDSEAM_API_URL", "http://localhost:4321/api")
	t.Setenv("REDSEAM_STATE_DIR", "/tmp/redseam-test")
	t.Setenv("REDSEAM_DEBUG", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:4321/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Storage.StateDir != "/tmp/redseam-test" {
		t.Errorf("StateDir = %q", cfg.Storage.StateDir)
	}
	if cfg.Storage.HistoryPath != filepath.Join("/tmp/redseam-test", "history.db") {
		t.Errorf("HistoryPath = %q", cfg.Storage.HistoryPath)
	}
	if !cfg.Logging.Debug {
		t.Error("REDSEAM_DEBUG should enable debug")
	}
}

func TestEnvHistoryOverrideWinsOverStateDir(t *testing.T) {
	t.Setenv("REDSEAM_STATE_DIR", "/tmp/redseam-a")
	t.Setenv("REDSEAM_HISTORY_DB", "/tmp/elsewhere/history.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.HistoryPath != "/tmp/elsewhere/history.db" {
		t.Errorf("HistoryPath = %q", cfg.Storage.HistoryPath)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.StateDir = "/srv/state"

	if cfg.SessionPath() != filepath.Join("/srv/state", "session.json") {
		t.Errorf("SessionPath = %q", cfg.SessionPath())
	}
	if cfg.BrowsePath() != filepath.Join("/srv/state", "browse.query") {
		t.Errorf("BrowsePath = %q", cfg.BrowsePath())
	}
}

func TestGetAPITimeout_GarbageFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = "soon"
	if cfg.GetAPITimeout() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s fallback", cfg.GetAPITimeout())
	}
}
