package engine

import "github.com/piwi3910/RackPlan/internal/model"

// minPalletsPerLevel is the per-level floor applied to the automatic estimate.
const minPalletsPerLevel = 2

// Positions estimates pallet slots. A positive override is used as-is;
// otherwise as many pallets as fit the bay footprint, never fewer than two.
// A non-positive pallet footprint falls back to the default 1.2 m x 1.0 m.
// When the fit or the total leaves the countable range the total is zero and
// PalletsDegenerate is set.
func Positions(bayFootprint, palletFootprint float64, levels, bayCount, override int) model.PalletPositions {
	perLevel := override
	fitOK := true
	if override <= 0 {
		if palletFootprint <= 0 {
			palletFootprint = model.DefaultPalletFootprint
		}
		var fit int
		fit, fitOK = floorCount(bayFootprint / palletFootprint)
		perLevel = max(fit, minPalletsPerLevel)
	}
	total, ok := mulCount(bayCount, perLevel, levels)
	return model.PalletPositions{
		PalletsPerLevel:      perLevel,
		TotalPalletPositions: total,
		PalletsDegenerate:    !(fitOK && ok),
	}
}
