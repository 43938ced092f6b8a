package model

import "github.com/google/uuid"

// Config is the immutable input to a capacity computation. Lengths are in
// feet, areas in square feet and capacities in cubic meters unless noted.
type Config struct {
	// Warehouse geometry
	Length      float64 `json:"warehouseLength" yaml:"warehouseLength"`           // ft, optional
	Width       float64 `json:"warehouseWidth" yaml:"warehouseWidth"`             // ft, optional
	Area        float64 `json:"warehouseArea" yaml:"warehouseArea"`               // sq ft, used when Length/Width are absent
	ClearHeight float64 `json:"warehouseClearHeight" yaml:"warehouseClearHeight"` // ft
	BaselineCBM float64 `json:"baselineCBM" yaml:"baselineCBM"`                   // capacity without racking

	// Rack geometry
	BayLength   float64 `json:"bayLength" yaml:"bayLength"`     // ft
	BayWidth    float64 `json:"bayWidth" yaml:"bayWidth"`       // ft (bay depth)
	LevelHeight float64 `json:"levelHeight" yaml:"levelHeight"` // ft
	Levels      int     `json:"levels" yaml:"levels"`

	// Area allocation: percentage mode unless UseDirectAreaInput is set
	PercentRacking     float64 `json:"percentRacking" yaml:"percentRacking"` // 0-100 of total area
	MezzPercent        float64 `json:"mezzPercent" yaml:"mezzPercent"`       // 0-100 of racking area
	UseDirectAreaInput bool    `json:"useDirectAreaInput" yaml:"useDirectAreaInput"`
	HDRackArea         float64 `json:"hdRackArea" yaml:"hdRackArea"`       // sq ft, direct mode only
	MezzanineArea      float64 `json:"mezzanineArea" yaml:"mezzanineArea"` // sq ft, direct mode only

	// Aisles
	SmallGap                float64  `json:"smallGap" yaml:"smallGap"`                                   // gap between back-to-back bays
	MainAisleWidth          float64  `json:"aisleWidth" yaml:"aisleWidth"`                               // ft
	CrossAisleWidth         *float64 `json:"crossAisleWidth,omitempty" yaml:"crossAisleWidth,omitempty"` // nil means MainAisleWidth
	IsVNA                   bool     `json:"isVNA" yaml:"isVNA"`
	AisleOverheadMultiplier float64  `json:"aisleOverheadMultiplier" yaml:"aisleOverheadMultiplier"` // empirical method only

	// Pallets
	PalletFootprint         float64 `json:"palletFootprint" yaml:"palletFootprint"`                 // sq ft
	PalletsPerLevelOverride int     `json:"palletsPerLevelOverride" yaml:"palletsPerLevelOverride"` // 0 = auto

	// Mezzanine
	MezzClearHeight float64 `json:"mezzClearHeight" yaml:"mezzClearHeight"` // ft per deck
	MezzLevels      int     `json:"mezzLevels" yaml:"mezzLevels"`           // stacked decks

	// Bay count method; module only applies when Length and Width are both positive
	UseModuleMethod bool `json:"useModuleMethod" yaml:"useModuleMethod"`
}

// HasDimensions reports whether exact warehouse length and width were supplied.
func (c Config) HasDimensions() bool {
	return c.Length > 0 && c.Width > 0
}

// CrossAisle resolves the cross-aisle width, falling back to the main aisle.
func (c Config) CrossAisle() float64 {
	return ResolveCrossAisle(c.MainAisleWidth, c.CrossAisleWidth)
}

// ResolveCrossAisle returns cross when it is set and mainAisle otherwise.
func ResolveCrossAisle(mainAisle float64, cross *float64) float64 {
	if cross != nil {
		return *cross
	}
	return mainAisle
}

// Float returns a pointer to v, for optional configuration fields.
func Float(v float64) *float64 {
	return &v
}

// DefaultConfig returns the reference warehouse configuration.
func DefaultConfig() Config {
	return Config{
		Area:                    108000,
		ClearHeight:             45,
		BaselineCBM:             7500,
		BayLength:               9.5,
		BayWidth:                3.5,
		LevelHeight:             6,
		Levels:                  7,
		PercentRacking:          60,
		MezzPercent:             30,
		SmallGap:                1.5,
		MainAisleWidth:          StandardAisleWidth,
		IsVNA:                   false,
		AisleOverheadMultiplier: StandardAisleMultiplier,
		PalletFootprint:         DefaultPalletFootprint,
		PalletsPerLevelOverride: 0,
		MezzClearHeight:         7.2,
		MezzLevels:              1,
		UseModuleMethod:         false,
	}
}

// Areas is the floor area breakdown in square feet.
type Areas struct {
	TotalArea          float64 `json:"totalArea"`
	RackingArea        float64 `json:"rackingArea"`
	MezzArea           float64 `json:"mezzArea"`
	HDArea             float64 `json:"hdArea"`
	StagingArea        float64 `json:"stagingArea"`
	UseDirectAreaInput bool    `json:"useDirectAreaInput"`
}

// BayGeometry describes a single rack bay.
type BayGeometry struct {
	BayFootprint       float64 `json:"bayFootprint"`       // sq ft
	TotalRackHeight    float64 `json:"totalRackHeight"`    // ft
	VolumePerLevelCuft float64 `json:"volumePerLevelCuft"` // cu ft
}

// BayCountMethod identifies which strategy produced a bay count.
type BayCountMethod string

const (
	MethodModule    BayCountMethod = "module"    // Exact row/column placement from warehouse dimensions
	MethodEmpirical BayCountMethod = "empirical" // Area-based estimate with an aisle overhead multiplier
)

// ModuleCount is the output of the geometric module method.
type ModuleCount struct {
	BaysPerRow   int     `json:"baysPerRow"`
	NumberOfRows int     `json:"numberOfRows"`
	TotalBays    int     `json:"totalBays"`
	ModuleLength float64 `json:"moduleLength"` // ft
	RowPitch     float64 `json:"rowPitch"`     // ft

	// CountDegenerate is set when a quotient or the bay total could not be
	// represented as a count (non-finite, negative or too large).
	CountDegenerate bool `json:"countDegenerate"`
}

// EmpiricalCount is the output of the area-based method.
type EmpiricalCount struct {
	EffectiveAreaPerBay float64 `json:"effectiveAreaPerBay"` // sq ft
	BayCount            int     `json:"bayCount"`
	CountDegenerate     bool    `json:"countDegenerate"`
}

// BayCountDetail is a tagged variant: exactly one of Module or Empirical is
// set, matching Method.
type BayCountDetail struct {
	Method    BayCountMethod  `json:"method"`
	Module    *ModuleCount    `json:"module,omitempty"`
	Empirical *EmpiricalCount `json:"empirical,omitempty"`
}

// Bays returns the bay count of whichever strategy ran.
func (d BayCountDetail) Bays() int {
	switch d.Method {
	case MethodModule:
		if d.Module != nil {
			return d.Module.TotalBays
		}
	case MethodEmpirical:
		if d.Empirical != nil {
			return d.Empirical.BayCount
		}
	}
	return 0
}

// Degenerate reports whether the strategy that ran could not produce a
// representable count.
func (d BayCountDetail) Degenerate() bool {
	switch {
	case d.Module != nil:
		return d.Module.CountDegenerate
	case d.Empirical != nil:
		return d.Empirical.CountDegenerate
	}
	return false
}

// BayVolume is the storage volume of one bay across all levels.
type BayVolume struct {
	VolumePerLevelCuft float64 `json:"volumePerLevelCuft"`
	VolumePerBayCuft   float64 `json:"volumePerBayCuft"`
	VolumePerBayCBM    float64 `json:"volumePerBayCBM"`
}

// MezzanineVolume is the storage volume of the mezzanine decks.
type MezzanineVolume struct {
	MezzTotalCuft float64 `json:"mezzTotalCuft"`
	MezzTotalCBM  float64 `json:"mezzTotalCBM"`
	MezzLevels    int     `json:"mezzLevels"`
}

// PalletPositions holds the pallet slot estimate.
type PalletPositions struct {
	PalletsPerLevel      int  `json:"palletsPerLevel"`
	TotalPalletPositions int  `json:"totalPalletPositions"`
	PalletsDegenerate    bool `json:"palletsDegenerate"` // total or per-level fit not representable
}

// DerivedMetrics are comparison ratios over the aggregated totals. A ratio
// whose denominator is zero is reported as 0 with its Defined flag cleared.
type DerivedMetrics struct {
	SqftPerCBM              float64 `json:"sqftPerCBM"`
	SpaceImprovementFactor  float64 `json:"spaceImprovementFactor"`
	ExtraCBM                float64 `json:"extraCBM"`
	SqftPerCBMDefined       bool    `json:"sqftPerCBMDefined"`
	SpaceImprovementDefined bool    `json:"spaceImprovementDefined"`
}

// LineItem is one bill-of-quantities entry.
type LineItem struct {
	Key         string `json:"-"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// BoQ is the bill of quantities for the racking structure.
type BoQ struct {
	UprightPairs     LineItem `json:"uprightPairs"`
	BeamPairs        LineItem `json:"beamPairs"`
	DeckingPanels    LineItem `json:"deckingPanels"`
	AnchorBolts      LineItem `json:"anchorBolts"`
	RowSpacers       LineItem `json:"rowSpacers"`
	ColumnProtectors LineItem `json:"columnProtectors"`

	// Overflow is set when a quantity product exceeds the countable range;
	// the affected items are then zero.
	Overflow bool `json:"overflow"`
}

// Items returns the line items in their fixed presentation order.
func (b BoQ) Items() []LineItem {
	return []LineItem{
		b.UprightPairs,
		b.BeamPairs,
		b.DeckingPanels,
		b.AnchorBolts,
		b.RowSpacers,
		b.ColumnProtectors,
	}
}

// Result is everything derived from one Config. It has no identity of its own:
// the same Config always produces an identical Result.
type Result struct {
	Areas           Areas           `json:"areas"`
	BayDimensions   BayGeometry     `json:"bayDimensions"`
	BayCount        int             `json:"bayCount"`
	BayCountDetails BayCountDetail  `json:"bayCountDetails"`
	TotalRackHeight float64         `json:"totalRackHeight"`
	BayVolume       BayVolume       `json:"bayVolume"`
	VolumePerBayCBM float64         `json:"volumePerBayCBM"`
	TotalRackCBM    float64         `json:"totalRackCBM"`
	Mezzanine       MezzanineVolume `json:"mezzanine"`
	MezzCBM         float64         `json:"mezzCBM"`
	TotalCBM        float64         `json:"totalCBM"`
	BaselineCBM     float64         `json:"baselineCBM"`

	DerivedMetrics
	PalletPositions

	BoQ        BoQ              `json:"boq"`
	Validation ValidationReport `json:"validation"`
}

// Project is a named configuration preset.
type Project struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Config Config `json:"config" yaml:"config"`
}

// NewProject creates a project with a fresh short ID.
func NewProject(name string, cfg Config) Project {
	if name == "" {
		name = "Untitled"
	}
	return Project{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Config: cfg,
	}
}
