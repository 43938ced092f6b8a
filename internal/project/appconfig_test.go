package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackPlan/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultExportFormat = model.FormatXLSX
	cfg.ServerPort = 9090
	cfg.DefaultClearHeight = 36
	cfg.RecentConfigs = []string{"/tmp/site-a.yaml", "/tmp/site-b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultExportFormat != model.FormatXLSX {
		t.Errorf("expected DefaultExportFormat=xlsx, got %s", loaded.DefaultExportFormat)
	}
	if loaded.ServerPort != 9090 {
		t.Errorf("expected ServerPort=9090, got %d", loaded.ServerPort)
	}
	if loaded.DefaultClearHeight != 36 {
		t.Errorf("expected DefaultClearHeight=36, got %f", loaded.DefaultClearHeight)
	}
	if len(loaded.RecentConfigs) != 2 {
		t.Errorf("expected 2 recent configs, got %d", len(loaded.RecentConfigs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultBaselineCBM != defaults.DefaultBaselineCBM {
		t.Errorf("expected default baseline %f, got %f", defaults.DefaultBaselineCBM, cfg.DefaultBaselineCBM)
	}
	if cfg.DefaultExportFormat != model.FormatCSV {
		t.Errorf("expected format=csv, got %s", cfg.DefaultExportFormat)
	}
}

func TestSaveAppConfigCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server_port": 7000, "default_export_format": "docx"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.ServerPort != 7000 {
		t.Errorf("expected ServerPort=7000, got %d", cfg.ServerPort)
	}
	// Unknown formats fall back to CSV
	if cfg.DefaultExportFormat != model.FormatCSV {
		t.Errorf("expected format=csv, got %s", cfg.DefaultExportFormat)
	}
	if cfg.RecentConfigs == nil {
		t.Error("expected RecentConfigs to be non-nil")
	}
	if cfg.DefaultOutputDir != "." {
		t.Errorf("expected default output dir to survive, got %q", cfg.DefaultOutputDir)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
