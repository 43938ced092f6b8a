package engine

import "github.com/piwi3910/RackPlan/internal/model"

// BayCBM computes the volume of one bay across all levels.
func BayCBM(bayLength, bayWidth, levelHeight float64, levels int) model.BayVolume {
	perLevel := bayLength * bayWidth * levelHeight
	perBay := perLevel * float64(levels)
	return model.BayVolume{
		VolumePerLevelCuft: perLevel,
		VolumePerBayCuft:   perBay,
		VolumePerBayCBM:    perBay / model.CuftPerCBM,
	}
}

// RackCBM is the total racking capacity in cubic meters.
func RackCBM(bayCount int, volumePerBayCBM float64) float64 {
	return float64(bayCount) * volumePerBayCBM
}

// MezzanineCBM computes mezzanine capacity. Every stacked deck contributes
// mezzArea x clearHeight; fewer than one deck is treated as one.
func MezzanineCBM(mezzArea, clearHeight float64, decks int) model.MezzanineVolume {
	if decks < 1 {
		decks = 1
	}
	cuft := mezzArea * clearHeight * float64(decks)
	return model.MezzanineVolume{
		MezzTotalCuft: cuft,
		MezzTotalCBM:  cuft / model.CuftPerCBM,
		MezzLevels:    decks,
	}
}

// TotalCBM sums the baseline, racking and mezzanine capacities.
func TotalCBM(baselineCBM, rackCBM, mezzCBM float64) float64 {
	return baselineCBM + rackCBM + mezzCBM
}
