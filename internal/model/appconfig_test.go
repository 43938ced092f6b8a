package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultConfig()

	if cfg.DefaultClearHeight != defaults.ClearHeight {
		t.Errorf("ClearHeight mismatch: app=%f config=%f", cfg.DefaultClearHeight, defaults.ClearHeight)
	}
	if cfg.DefaultBaselineCBM != defaults.BaselineCBM {
		t.Errorf("BaselineCBM mismatch: app=%f config=%f", cfg.DefaultBaselineCBM, defaults.BaselineCBM)
	}
	if cfg.DefaultExportFormat != FormatCSV {
		t.Errorf("expected default export format csv, got %s", cfg.DefaultExportFormat)
	}
	if cfg.RecentConfigs == nil {
		t.Error("RecentConfigs should not be nil")
	}
}

func TestApplyToConfig(t *testing.T) {
	app := DefaultAppConfig()
	app.DefaultClearHeight = 32
	app.DefaultBaselineCBM = 1200
	app.DefaultModule = true

	cfg := DefaultConfig()
	app.ApplyToConfig(&cfg)

	if cfg.ClearHeight != 32 {
		t.Errorf("expected ClearHeight=32, got %f", cfg.ClearHeight)
	}
	if cfg.BaselineCBM != 1200 {
		t.Errorf("expected BaselineCBM=1200, got %f", cfg.BaselineCBM)
	}
	if !cfg.UseModuleMethod {
		t.Error("expected UseModuleMethod=true")
	}
}

func TestAddRecentMovesToFrontAndTrims(t *testing.T) {
	app := DefaultAppConfig()
	for i := 0; i < MaxRecentConfigs+3; i++ {
		app.AddRecent(fmt.Sprintf("/tmp/w%d.yaml", i))
	}
	if len(app.RecentConfigs) != MaxRecentConfigs {
		t.Fatalf("expected %d recent configs, got %d", MaxRecentConfigs, len(app.RecentConfigs))
	}

	app.AddRecent("/tmp/w5.yaml")
	if app.RecentConfigs[0] != "/tmp/w5.yaml" {
		t.Errorf("expected /tmp/w5.yaml first, got %s", app.RecentConfigs[0])
	}
	seen := map[string]int{}
	for _, p := range app.RecentConfigs {
		seen[p]++
	}
	if seen["/tmp/w5.yaml"] != 1 {
		t.Errorf("expected no duplicates, got %d copies", seen["/tmp/w5.yaml"])
	}
}

func TestParseExportFormat(t *testing.T) {
	f, ok := ParseExportFormat("xlsx")
	if !ok || f != FormatXLSX {
		t.Errorf("expected xlsx, got %q ok=%v", f, ok)
	}
	if _, ok := ParseExportFormat("docx"); ok {
		t.Error("docx should not be a known format")
	}
}
