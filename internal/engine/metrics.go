package engine

import "github.com/piwi3910/RackPlan/internal/model"

// Metrics computes efficiency and comparison ratios. Ratios with a zero
// denominator are returned as 0 and marked undefined rather than producing
// NaN or Inf.
func Metrics(totalArea, totalCBM, baselineCBM float64) model.DerivedMetrics {
	m := model.DerivedMetrics{
		ExtraCBM: totalCBM - baselineCBM,
	}
	if totalCBM != 0 {
		m.SqftPerCBM = totalArea / totalCBM
		m.SqftPerCBMDefined = true
	}
	if baselineCBM != 0 {
		m.SpaceImprovementFactor = totalCBM / baselineCBM
		m.SpaceImprovementDefined = true
	}
	return m
}
