package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/RackPlan/internal/model"
)

// Safety margins applied before rounding up. Kept as decimals so that
// products such as 20 x 1.05 ceil to 21 rather than 22.
var (
	uprightMargin  = decimal.RequireFromString("1.05")
	beamMargin     = decimal.RequireFromString("1.08")
	deckingMargin  = decimal.RequireFromString("1.10")
	anchorMargin   = decimal.RequireFromString("1.05")
	protectorShare = decimal.RequireFromString("0.3")
)

const (
	boltsPerUpright = 4
	spacersPerBay   = 2
)

// ceilQty returns ceil(raw x factor) as a non-negative integer.
func ceilQty(raw int, factor decimal.Decimal) int {
	if raw <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(raw)).Mul(factor).Ceil().IntPart())
}

// GenerateBoQ converts the bay and level counts into rounded-up material
// quantities. Anchor bolts and column protectors derive from the already
// rounded upright count. Any quantity whose product leaves the countable
// range is zero and Overflow is set.
func GenerateBoQ(bayCount, levels int, bayLength, bayWidth, rackHeight float64) model.BoQ {
	bayCount = max(bayCount, 0)
	levels = max(levels, 0)

	uprights := 0
	okUprights := float64(bayCount) < maxCount
	if okUprights {
		uprights = ceilQty(bayCount+1, uprightMargin)
	}
	bayLevels, ok := mulCount(bayCount, levels)
	spacers, okSpacers := mulCount(bayCount, spacersPerBay)

	return model.BoQ{
		UprightPairs: model.LineItem{
			Key:         "uprightPairs",
			Quantity:    uprights,
			Description: fmt.Sprintf("Upright frames (%.0f ft height)", rackHeight),
		},
		BeamPairs: model.LineItem{
			Key:         "beamPairs",
			Quantity:    ceilQty(bayLevels, beamMargin),
			Description: fmt.Sprintf("Beam pairs (%.1f ft length)", bayLength),
		},
		DeckingPanels: model.LineItem{
			Key:         "deckingPanels",
			Quantity:    ceilQty(bayLevels, deckingMargin),
			Description: fmt.Sprintf("Wire decking panels (%.1f × %.1f ft)", bayLength, bayWidth),
		},
		AnchorBolts: model.LineItem{
			Key:         "anchorBolts",
			Quantity:    ceilQty(uprights*boltsPerUpright, anchorMargin),
			Description: "Anchor bolts with hardware",
		},
		RowSpacers: model.LineItem{
			Key:         "rowSpacers",
			Quantity:    spacers,
			Description: "Row spacers (back-to-back bays)",
		},
		ColumnProtectors: model.LineItem{
			Key:         "columnProtectors",
			Quantity:    ceilQty(uprights, protectorShare),
			Description: "Column protectors (corner guards)",
		},
		Overflow: !(okUprights && ok && okSpacers),
	}
}
