package engine

import (
	"math"

	"github.com/piwi3910/RackPlan/internal/model"
)

// maxCount bounds floor conversions so oversized quotients never overflow int.
const maxCount = float64(math.MaxInt32)

// floorCount floors a non-negative quotient to a count. NaN, infinities,
// negative values and values beyond maxCount yield 0 and ok=false.
func floorCount(x float64) (n int, ok bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 || x > maxCount {
		return 0, false
	}
	return int(math.Floor(x)), true
}

// mulCount multiplies non-negative counts. Negative factors are treated as
// zero. A product beyond maxCount yields 0 and ok=false.
func mulCount(factors ...int) (n int, ok bool) {
	p := 1.0
	for _, f := range factors {
		p *= float64(max(f, 0))
	}
	if p > maxCount {
		return 0, false
	}
	return int(p), true
}

// ModuleLength is the repeating unit of the module layout: two bays placed
// back to back across smallGap, followed by one aisle.
func ModuleLength(bayLength, smallGap, aisleWidth float64) float64 {
	return 2*bayLength + smallGap + aisleWidth
}

// CountModule places whole modules along the warehouse length and whole rows
// across its width. Partial modules and rows are discarded. A nil
// crossAisleWidth falls back to aisleWidth for the row pitch.
//
// ok is false when length or width is missing; the caller must fall back to
// CountEmpirical.
func CountModule(length, width, bayLength, bayWidth, smallGap, aisleWidth float64, crossAisleWidth *float64) (count model.ModuleCount, ok bool) {
	if length <= 0 || width <= 0 {
		return model.ModuleCount{}, false
	}

	moduleLength := ModuleLength(bayLength, smallGap, aisleWidth)
	modules, okModules := floorCount(length / moduleLength)
	baysPerRow, okRow := mulCount(modules, 2)

	rowPitch := bayWidth + model.ResolveCrossAisle(aisleWidth, crossAisleWidth)
	rows, okRows := floorCount(width / rowPitch)
	total, okTotal := mulCount(baysPerRow, rows)

	return model.ModuleCount{
		BaysPerRow:      baysPerRow,
		NumberOfRows:    rows,
		TotalBays:       total,
		ModuleLength:    moduleLength,
		RowPitch:        rowPitch,
		CountDegenerate: !(okModules && okRow && okRows && okTotal),
	}, true
}

// CountEmpirical estimates bays from the HD area, inflating each bay's
// footprint by an aisle overhead multiplier (typically 1.5 for standard
// aisles, 1.2 for VNA).
func CountEmpirical(hdArea, bayFootprint, aisleOverheadMultiplier float64) model.EmpiricalCount {
	effective := bayFootprint * aisleOverheadMultiplier
	bays, ok := floorCount(hdArea / effective)
	return model.EmpiricalCount{
		EffectiveAreaPerBay: effective,
		BayCount:            bays,
		CountDegenerate:     !ok,
	}
}

// UsesModuleMethod is the strategy predicate: the module method runs only
// when requested and exact dimensions are present.
func UsesModuleMethod(cfg model.Config) bool {
	return cfg.UseModuleMethod && cfg.HasDimensions()
}

// CountBays selects and runs the bay-count strategy for cfg.
func CountBays(cfg model.Config, areas model.Areas, geom model.BayGeometry) model.BayCountDetail {
	if UsesModuleMethod(cfg) {
		if mc, ok := CountModule(cfg.Length, cfg.Width, cfg.BayLength, cfg.BayWidth,
			cfg.SmallGap, cfg.MainAisleWidth, cfg.CrossAisleWidth); ok {
			return model.BayCountDetail{Method: model.MethodModule, Module: &mc}
		}
	}
	ec := CountEmpirical(areas.HDArea, geom.BayFootprint, cfg.AisleOverheadMultiplier)
	return model.BayCountDetail{Method: model.MethodEmpirical, Empirical: &ec}
}
