package model

// Unit conversion constants. The engine computes volumes in cubic feet and
// converts to cubic meters (CBM) only at the aggregation step.
const (
	CuftPerCBM = 35.3147 // cubic feet in one cubic meter

	DefaultPalletFootprint = 12.92 // sq ft, 1.2 m x 1.0 m
)

// Aisle overhead multipliers used by the empirical bay-count method.
const (
	StandardAisleMultiplier = 1.5
	VNAAisleMultiplier      = 1.2
)

// Reference aisle widths (ft) used when toggling between standard and VNA layouts.
const (
	StandardAisleWidth = 10.0
	VNAAisleWidth      = 6.0
)
