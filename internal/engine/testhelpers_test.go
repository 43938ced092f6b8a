package engine

import "github.com/piwi3910/RackPlan/internal/model"

// referenceConfig is the 300 x 360 ft reference warehouse using the module
// method with standard aisles.
func referenceConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.Length = 300
	cfg.Width = 360
	cfg.UseModuleMethod = true
	return cfg
}

// vnaConfig is referenceConfig with very narrow aisles.
func vnaConfig() model.Config {
	cfg := referenceConfig()
	cfg.MainAisleWidth = model.VNAAisleWidth
	cfg.AisleOverheadMultiplier = model.VNAAisleMultiplier
	cfg.IsVNA = true
	return cfg
}

func fieldsOf(findings []model.Finding) []string {
	fields := make([]string, 0, len(findings))
	for _, f := range findings {
		fields = append(fields, f.Field)
	}
	return fields
}
