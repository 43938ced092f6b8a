package engine

import (
	"math"

	"github.com/piwi3910/RackPlan/internal/model"
)

// MaxLayoutBays caps the number of bays PlaceBays emits.
const MaxLayoutBays = 50000

// layoutAspect is the assumed length:width ratio when only an area is known.
const layoutAspect = 1.5

// PlacedBay is one bay rectangle in warehouse coordinates (feet, origin at
// the top-left corner, x along the length).
type PlacedBay struct {
	Row    int     `json:"row"`
	Index  int     `json:"index"` // position within the row
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// Layout is the floor plan of placed bays. Length and Width are estimated
// from the area when the configuration has no exact dimensions.
type Layout struct {
	Length       float64     `json:"length"`
	Width        float64     `json:"width"`
	Estimated    bool        `json:"estimated"`
	ModuleLength float64     `json:"moduleLength"`
	RowPitch     float64     `json:"rowPitch"`
	Bays         []PlacedBay `json:"bays"`
	Truncated    bool        `json:"truncated"`
}

// LayoutDimensions returns the warehouse length and width used for drawing.
func LayoutDimensions(cfg model.Config) (length, width float64, estimated bool) {
	if cfg.HasDimensions() {
		return cfg.Length, cfg.Width, false
	}
	area := ResolveArea(cfg)
	if area <= 0 {
		return 0, 0, true
	}
	length = math.Sqrt(area * layoutAspect)
	return length, area / length, true
}

// PlaceBays positions bays module by module: each module holds two bays
// separated by the small gap, and rows repeat at the row pitch.
func PlaceBays(cfg model.Config) Layout {
	length, width, estimated := LayoutDimensions(cfg)
	layout := Layout{
		Length:    length,
		Width:     width,
		Estimated: estimated,
		Bays:      []PlacedBay{},
	}
	if length <= 0 || width <= 0 {
		return layout
	}

	count, _ := CountModule(length, width, cfg.BayLength, cfg.BayWidth,
		cfg.SmallGap, cfg.MainAisleWidth, cfg.CrossAisleWidth)
	layout.ModuleLength = count.ModuleLength
	layout.RowPitch = count.RowPitch
	if !(count.ModuleLength > 0) || !(count.RowPitch > 0) {
		return layout
	}

	modules := count.BaysPerRow / 2
	for row := 0; row < count.NumberOfRows; row++ {
		y := float64(row) * count.RowPitch
		for m := 0; m < modules; m++ {
			if len(layout.Bays)+2 > MaxLayoutBays {
				layout.Truncated = true
				return layout
			}
			x := float64(m) * count.ModuleLength
			layout.Bays = append(layout.Bays,
				PlacedBay{Row: row, Index: 2 * m, X: x, Y: y, Length: cfg.BayLength, Width: cfg.BayWidth},
				PlacedBay{Row: row, Index: 2*m + 1, X: x + cfg.BayLength + cfg.SmallGap, Y: y, Length: cfg.BayLength, Width: cfg.BayWidth},
			)
		}
	}
	return layout
}
