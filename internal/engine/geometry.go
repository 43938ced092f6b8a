package engine

import "github.com/piwi3910/RackPlan/internal/model"

// Geometry derives a bay's footprint, stacked height and per-level volume.
// Inputs are not clamped.
func Geometry(bayLength, bayWidth, levelHeight float64, levels int) model.BayGeometry {
	footprint := bayLength * bayWidth
	return model.BayGeometry{
		BayFootprint:       footprint,
		TotalRackHeight:    levelHeight * float64(levels),
		VolumePerLevelCuft: footprint * levelHeight,
	}
}
