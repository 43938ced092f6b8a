package engine

import (
	"github.com/piwi3910/RackPlan/internal/model"
)

// ComparisonScenario is a named configuration to compare.
type ComparisonScenario struct {
	Name   string       `json:"name"`
	Config model.Config `json:"config"`
}

// ComparisonResult holds the capacity result and headline figures for a
// single scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario `json:"scenario"`
	Result          model.Result       `json:"result"`
	BayCount        int                `json:"bayCount"`
	TotalCBM        float64            `json:"totalCBM"`
	PalletPositions int                `json:"totalPalletPositions"`
	DeltaCBM        float64            `json:"deltaCBM"` // vs the first scenario
	ErrorCount      int                `json:"errorCount"`
}

// CompareScenarios computes each scenario and returns the results in
// scenario order. DeltaCBM is measured against the first scenario.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	var reference float64
	for i, scenario := range scenarios {
		res := Compute(scenario.Config)
		if i == 0 {
			reference = res.TotalCBM
		}

		results = append(results, ComparisonResult{
			Scenario:        scenario,
			Result:          res,
			BayCount:        res.BayCount,
			TotalCBM:        res.TotalCBM,
			PalletPositions: res.TotalPalletPositions,
			DeltaCBM:        res.TotalCBM - reference,
			ErrorCount:      len(res.Validation.Errors),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around base: the
// opposite aisle type, the other bay-count method and a layout without
// mezzanine.
func BuildDefaultScenarios(base model.Config) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Configuration",
			Config: base,
		},
	}

	// Scenario: Swap standard and very narrow aisles
	aisle := base
	aisle.CrossAisleWidth = nil
	if base.IsVNA {
		aisle.IsVNA = false
		aisle.MainAisleWidth = model.StandardAisleWidth
		aisle.AisleOverheadMultiplier = model.StandardAisleMultiplier
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Standard Aisles",
			Config: aisle,
		})
	} else {
		aisle.IsVNA = true
		aisle.MainAisleWidth = model.VNAAisleWidth
		aisle.AisleOverheadMultiplier = model.VNAAisleMultiplier
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Very Narrow Aisles",
			Config: aisle,
		})
	}

	// Scenario: The other bay-count method, only meaningful with exact dimensions
	if base.HasDimensions() {
		method := base
		method.UseModuleMethod = !base.UseModuleMethod
		name := "Module Method"
		if base.UseModuleMethod {
			name = "Empirical Method"
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:   name,
			Config: method,
		})
	}

	// Scenario: No mezzanine
	if base.MezzPercent > 0 || base.MezzanineArea > 0 {
		noMezz := base
		noMezz.MezzPercent = 0
		noMezz.MezzanineArea = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Mezzanine",
			Config: noMezz,
		})
	}

	return scenarios
}
