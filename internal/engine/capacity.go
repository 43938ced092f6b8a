package engine

import (
	"math"

	"github.com/piwi3910/RackPlan/internal/model"
)

// Compute runs the full capacity pipeline for cfg. It always returns a fully
// populated Result; problems with the configuration are reported in
// Result.Validation rather than as an error. Non-finite values are reported
// as degenerate findings and then zeroed so the Result stays encodable.
func Compute(cfg model.Config) model.Result {
	totalArea := ResolveArea(cfg)
	areas := Allocate(cfg, totalArea)

	geom := Geometry(cfg.BayLength, cfg.BayWidth, cfg.LevelHeight, cfg.Levels)
	detail := CountBays(cfg, areas, geom)
	bayCount := detail.Bays()

	bayVol := BayCBM(cfg.BayLength, cfg.BayWidth, cfg.LevelHeight, cfg.Levels)
	rackCBM := RackCBM(bayCount, bayVol.VolumePerBayCBM)
	mezz := MezzanineCBM(areas.MezzArea, cfg.MezzClearHeight, cfg.MezzLevels)
	totalCBM := TotalCBM(cfg.BaselineCBM, rackCBM, mezz.MezzTotalCBM)

	pallets := Positions(geom.BayFootprint, cfg.PalletFootprint, cfg.Levels, bayCount, cfg.PalletsPerLevelOverride)
	metrics := Metrics(totalArea, totalCBM, cfg.BaselineCBM)
	boq := GenerateBoQ(bayCount, cfg.Levels, cfg.BayLength, cfg.BayWidth, geom.TotalRackHeight)

	res := model.Result{
		Areas:           areas,
		BayDimensions:   geom,
		BayCount:        bayCount,
		BayCountDetails: detail,
		TotalRackHeight: geom.TotalRackHeight,
		BayVolume:       bayVol,
		VolumePerBayCBM: bayVol.VolumePerBayCBM,
		TotalRackCBM:    rackCBM,
		Mezzanine:       mezz,
		MezzCBM:         mezz.MezzTotalCBM,
		TotalCBM:        totalCBM,
		BaselineCBM:     cfg.BaselineCBM,
		DerivedMetrics:  metrics,
		PalletPositions: pallets,
		BoQ:             boq,
	}
	res.Validation = Validate(cfg, res)
	sanitize(&res)
	return res
}

// sanitize zeroes every non-finite float in res, including the copies kept in
// the nested records.
func sanitize(res *model.Result) {
	fields := numericFields(res)
	fields = append(fields,
		numericField{"bayDimensions.totalRackHeight", &res.BayDimensions.TotalRackHeight},
		numericField{"bayDimensions.volumePerLevelCuft", &res.BayDimensions.VolumePerLevelCuft},
		numericField{"bayVolume.volumePerBayCBM", &res.BayVolume.VolumePerBayCBM},
		numericField{"mezzanine.mezzTotalCBM", &res.Mezzanine.MezzTotalCBM},
	)
	for _, f := range fields {
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			*f.value = 0
		}
	}
}
