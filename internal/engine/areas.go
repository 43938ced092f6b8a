package engine

import "github.com/piwi3910/RackPlan/internal/model"

// ResolveArea returns the total floor area. Exact dimensions win over a
// supplied area; without both dimensions the supplied area (or 0) is used.
func ResolveArea(cfg model.Config) float64 {
	if cfg.HasDimensions() {
		return cfg.Length * cfg.Width
	}
	if cfg.Area > 0 {
		return cfg.Area
	}
	return 0
}

// AllocateAreas splits the total area by percentage. Staging area is not
// clamped and goes negative when percentRacking exceeds 100.
func AllocateAreas(totalArea, percentRacking, mezzPercent float64) model.Areas {
	rackingArea := totalArea * (percentRacking / 100)
	mezzArea := rackingArea * (mezzPercent / 100)
	return model.Areas{
		TotalArea:   totalArea,
		RackingArea: rackingArea,
		MezzArea:    mezzArea,
		HDArea:      rackingArea - mezzArea,
		StagingArea: totalArea - rackingArea,
	}
}

// AllocateDirect takes the HD and mezzanine areas verbatim. Staging area is
// clamped at zero; an overflowing allocation is left for validation to flag.
func AllocateDirect(totalArea, hdArea, mezzArea float64) model.Areas {
	rackingArea := hdArea + mezzArea
	staging := totalArea - rackingArea
	if staging < 0 {
		staging = 0
	}
	return model.Areas{
		TotalArea:          totalArea,
		RackingArea:        rackingArea,
		MezzArea:           mezzArea,
		HDArea:             hdArea,
		StagingArea:        staging,
		UseDirectAreaInput: true,
	}
}

// Allocate picks the allocation mode configured in cfg.
func Allocate(cfg model.Config, totalArea float64) model.Areas {
	if cfg.UseDirectAreaInput {
		return AllocateDirect(totalArea, cfg.HDRackArea, cfg.MezzanineArea)
	}
	return AllocateAreas(totalArea, cfg.PercentRacking, cfg.MezzPercent)
}
