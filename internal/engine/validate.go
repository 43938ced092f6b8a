package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/RackPlan/internal/model"
)

const (
	minReliableBays    = 5
	minVNAAisleWidth   = 7.0
	minMezzClearHeight = 6.0
)

// Validate cross-checks a configuration against the result it produced.
// Every rule runs; findings are appended in rule order.
func Validate(cfg model.Config, res model.Result) model.ValidationReport {
	report := model.NewValidationReport()

	if cfg.ClearHeight > 0 && res.TotalRackHeight > cfg.ClearHeight {
		report.AddError(model.Finding{
			Field: "levels",
			Message: fmt.Sprintf("Rack height (%.1f ft) exceeds warehouse clear height (%v ft). Reduce number of levels.",
				res.TotalRackHeight, cfg.ClearHeight),
		})
	}

	if res.BayCount < minReliableBays {
		report.AddWarning(model.Finding{
			Field:   "bayCount",
			Message: fmt.Sprintf("Very low bay count (%d). Consider adjusting rack dimensions or warehouse area allocation.", res.BayCount),
		})
	}

	if cfg.IsVNA && cfg.MainAisleWidth < minVNAAisleWidth {
		report.AddWarning(model.Finding{
			Field:   "aisleWidth",
			Message: "VNA with aisle width < 7 ft requires specialized equipment and safety protocols. Ensure proper clearances.",
		})
	}

	if cfg.MezzClearHeight > 0 && cfg.MezzClearHeight < minMezzClearHeight {
		report.AddWarning(model.Finding{
			Field:   "mezzClearHeight",
			Message: "Mezzanine clear height < 6 ft may create cramped picking zones. Consider increasing height.",
		})
	}

	if res.Areas.RackingArea > res.Areas.TotalArea {
		field := "percentRacking"
		if res.Areas.UseDirectAreaInput {
			field = "hdRackArea"
		}
		report.AddError(model.Finding{
			Field:   field,
			Message: "Racking area exceeds total warehouse area. Reduce percentage or check inputs.",
		})
	}

	validateRanges(cfg, res, &report)
	validateDegenerate(res, &report)
	return report
}

func validateRanges(cfg model.Config, res model.Result, report *model.ValidationReport) {
	if !(res.Areas.TotalArea > 0) {
		report.AddError(model.Finding{
			Field:   "area",
			Message: "Warehouse area must be positive. Enter length and width or a total area.",
		})
	}
	if cfg.ClearHeight < 0 {
		report.AddError(model.Finding{
			Field:   "warehouseClearHeight",
			Message: fmt.Sprintf("Warehouse clear height (%v ft) cannot be negative. Enter 0 to skip the height check.", cfg.ClearHeight),
		})
	}
	if cfg.MezzClearHeight < 0 {
		report.AddError(model.Finding{
			Field:   "mezzClearHeight",
			Message: fmt.Sprintf("Mezzanine clear height (%v ft) cannot be negative.", cfg.MezzClearHeight),
		})
	}
	if cfg.Levels < 1 {
		report.AddError(model.Finding{
			Field:   "levels",
			Message: fmt.Sprintf("Number of levels (%d) must be at least 1.", cfg.Levels),
		})
	}
	if cfg.UseDirectAreaInput {
		if !nonNegative(cfg.HDRackArea) {
			report.AddError(model.Finding{
				Field:   "hdRackArea",
				Message: fmt.Sprintf("HD rack area (%v sq ft) must be a non-negative number.", cfg.HDRackArea),
			})
		}
		if !nonNegative(cfg.MezzanineArea) {
			report.AddError(model.Finding{
				Field:   "mezzanineArea",
				Message: fmt.Sprintf("Mezzanine area (%v sq ft) must be a non-negative number.", cfg.MezzanineArea),
			})
		}
	} else {
		if cfg.PercentRacking < 0 || cfg.PercentRacking > 100 {
			report.AddError(model.Finding{
				Field:   "percentRacking",
				Message: fmt.Sprintf("Racking percentage (%v) must be between 0 and 100.", cfg.PercentRacking),
			})
		}
		if cfg.MezzPercent < 0 || cfg.MezzPercent > 100 {
			report.AddError(model.Finding{
				Field:   "mezzPercent",
				Message: fmt.Sprintf("Mezzanine percentage (%v) must be between 0 and 100.", cfg.MezzPercent),
			})
		}
	}
	if cfg.MezzLevels < 1 && res.Areas.MezzArea > 0 {
		report.AddWarning(model.Finding{
			Field:   "mezzLevels",
			Message: fmt.Sprintf("Mezzanine levels (%d) is below 1; a single deck is assumed.", cfg.MezzLevels),
		})
	}
}

// nonNegative reports whether v is finite and at least zero.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func validateDegenerate(res model.Result, report *model.ValidationReport) {
	degenerate := func(field, msg string) {
		report.AddError(model.Finding{Field: field, Message: msg, Kind: model.KindDegenerate})
	}

	switch d := res.BayCountDetails; d.Method {
	case model.MethodModule:
		if d.Module != nil {
			if !(d.Module.ModuleLength > 0) {
				degenerate("moduleLength", fmt.Sprintf("Module length (%v ft) must be positive. Check bay length, gap and aisle width.", d.Module.ModuleLength))
			}
			if !(d.Module.RowPitch > 0) {
				degenerate("rowPitch", fmt.Sprintf("Row pitch (%v ft) must be positive. Check bay width and cross-aisle width.", d.Module.RowPitch))
			}
		}
	case model.MethodEmpirical:
		if d.Empirical != nil && !(d.Empirical.EffectiveAreaPerBay > 0) {
			degenerate("aisleOverheadMultiplier", fmt.Sprintf("Effective area per bay (%v sq ft) must be positive. Check bay dimensions and aisle overhead multiplier.", d.Empirical.EffectiveAreaPerBay))
		}
	}

	if res.BayCountDetails.Degenerate() {
		degenerate("bayCount", "Bay count is outside the countable range. Check warehouse area and bay dimensions.")
	}
	if res.PalletsDegenerate {
		degenerate("totalPalletPositions", "Pallet positions are outside the countable range. Check the pallets-per-level override and pallet footprint.")
	}
	if res.BoQ.Overflow {
		degenerate("boq", "Bill of quantities exceeds the countable range. Check bay count and levels.")
	}

	if !res.SqftPerCBMDefined {
		degenerate("totalCBM", "Total capacity is zero; area per CBM is undefined.")
	}
	if !res.SpaceImprovementDefined {
		degenerate("baselineCBM", "Baseline capacity is zero; space improvement factor is undefined.")
	}

	for _, f := range numericFields(&res) {
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			degenerate(f.name, fmt.Sprintf("%s is not a finite number (%v). Check inputs for invalid values.", f.name, *f.value))
		}
	}
}

type numericField struct {
	name  string
	value *float64
}

// numericFields lists the real-valued Result fields in a fixed order so they
// can be scanned and sanitized together.
func numericFields(res *model.Result) []numericField {
	fields := []numericField{
		{"totalArea", &res.Areas.TotalArea},
		{"rackingArea", &res.Areas.RackingArea},
		{"mezzArea", &res.Areas.MezzArea},
		{"hdArea", &res.Areas.HDArea},
		{"stagingArea", &res.Areas.StagingArea},
		{"bayFootprint", &res.BayDimensions.BayFootprint},
		{"totalRackHeight", &res.TotalRackHeight},
		{"volumePerLevelCuft", &res.BayVolume.VolumePerLevelCuft},
		{"volumePerBayCuft", &res.BayVolume.VolumePerBayCuft},
		{"volumePerBayCBM", &res.VolumePerBayCBM},
		{"totalRackCBM", &res.TotalRackCBM},
		{"mezzTotalCuft", &res.Mezzanine.MezzTotalCuft},
		{"mezzCBM", &res.MezzCBM},
		{"totalCBM", &res.TotalCBM},
		{"baselineCBM", &res.BaselineCBM},
		{"sqftPerCBM", &res.SqftPerCBM},
		{"spaceImprovementFactor", &res.SpaceImprovementFactor},
		{"extraCBM", &res.ExtraCBM},
	}
	if m := res.BayCountDetails.Module; m != nil {
		fields = append(fields,
			numericField{"moduleLength", &m.ModuleLength},
			numericField{"rowPitch", &m.RowPitch})
	}
	if e := res.BayCountDetails.Empirical; e != nil {
		fields = append(fields, numericField{"effectiveAreaPerBay", &e.EffectiveAreaPerBay})
	}
	return fields
}
