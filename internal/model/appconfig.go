package model

// ExportFormat names an output format supported by the export commands.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
	FormatDXF  ExportFormat = "dxf"
	FormatRFQ  ExportFormat = "rfq"
)

// ExportFormats lists every supported export format.
var ExportFormats = []ExportFormat{FormatCSV, FormatXLSX, FormatPDF, FormatDXF, FormatRFQ}

// ParseExportFormat returns the format matching s and whether it is known.
func ParseExportFormat(s string) (ExportFormat, bool) {
	for _, f := range ExportFormats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// MaxRecentConfigs caps the recent configuration file list.
const MaxRecentConfigs = 10

// AppConfig holds application-wide preferences.
type AppConfig struct {
	DefaultExportFormat ExportFormat `json:"default_export_format"`
	DefaultOutputDir    string       `json:"default_output_dir"`
	ServerPort          int          `json:"server_port"`
	RecentConfigs       []string     `json:"recent_configs"`

	// Defaults applied to configurations that do not set them
	DefaultClearHeight float64 `json:"default_clear_height"`
	DefaultBaselineCBM float64 `json:"default_baseline_cbm"`
	DefaultModule      bool    `json:"default_module_method"`
}

// DefaultAppConfig returns an AppConfig populated with values that match
// DefaultConfig().
func DefaultAppConfig() AppConfig {
	defaults := DefaultConfig()
	return AppConfig{
		DefaultExportFormat: FormatCSV,
		DefaultOutputDir:    ".",
		ServerPort:          8080,
		RecentConfigs:       []string{},
		DefaultClearHeight:  defaults.ClearHeight,
		DefaultBaselineCBM:  defaults.BaselineCBM,
		DefaultModule:       defaults.UseModuleMethod,
	}
}

// ApplyToConfig copies the preference defaults into a Config. It is used as
// the base onto which a configuration file is decoded.
func (c AppConfig) ApplyToConfig(cfg *Config) {
	cfg.ClearHeight = c.DefaultClearHeight
	cfg.BaselineCBM = c.DefaultBaselineCBM
	cfg.UseModuleMethod = c.DefaultModule
}

// AddRecent moves path to the front of the recent list, dropping duplicates
// and trimming to MaxRecentConfigs.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.RecentConfigs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentConfigs {
		recent = recent[:MaxRecentConfigs]
	}
	c.RecentConfigs = recent
}
