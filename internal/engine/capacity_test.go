package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackPlan/internal/model"
)

func TestCompute_ReferenceModule(t *testing.T) {
	res := Compute(referenceConfig())

	assert.Equal(t, 468, res.BayCount)
	assert.Equal(t, model.MethodModule, res.BayCountDetails.Method)
	assert.InDelta(t, 18506.8, res.TotalRackCBM, 0.1)
	assert.InDelta(t, 3963.45, res.MezzCBM, 0.01)
	assert.InDelta(t, 29970.25, res.TotalCBM, 0.01)
	assert.Equal(t, 6552, res.TotalPalletPositions)
	assert.Equal(t, 2, res.PalletsPerLevel)
	assert.Equal(t, 42.0, res.TotalRackHeight)
	assert.Equal(t, 7500.0, res.BaselineCBM)
	assert.InDelta(t, 22470.25, res.ExtraCBM, 0.01)
	assert.InDelta(t, 3.996, res.SpaceImprovementFactor, 1e-3)

	assert.Equal(t, 493, res.BoQ.UprightPairs.Quantity)
	assert.Equal(t, 936, res.BoQ.RowSpacers.Quantity)

	assert.True(t, res.Validation.Valid)
	assert.Empty(t, res.Validation.Errors)
	assert.Empty(t, res.Validation.Warnings)
	assert.Equal(t, "0 errors, 0 warnings", res.Validation.Summary)
}

func TestCompute_VNA(t *testing.T) {
	res := Compute(vnaConfig())

	assert.Equal(t, 814, res.BayCount)
	assert.Greater(t, res.BayCount, 468)
	assert.Contains(t, fieldsOf(res.Validation.Warnings), "aisleWidth")
	assert.Empty(t, res.Validation.Errors)
}

func TestCompute_RackTallerThanBuilding(t *testing.T) {
	cfg := referenceConfig()
	cfg.ClearHeight = 30

	res := Compute(cfg)

	require.NotEmpty(t, res.Validation.Errors)
	assert.Equal(t, "levels", res.Validation.Errors[0].Field)
	assert.Equal(t, "Rack height (42.0 ft) exceeds warehouse clear height (30 ft). Reduce number of levels.",
		res.Validation.Errors[0].Message)
	assert.False(t, res.Validation.Valid)
	// Errors never stop computation.
	assert.Equal(t, 468, res.BayCount)
}

func TestCompute_EmpiricalDefault(t *testing.T) {
	res := Compute(model.DefaultConfig())

	assert.Equal(t, model.MethodEmpirical, res.BayCountDetails.Method)
	assert.Equal(t, 909, res.BayCount)
	require.NotNil(t, res.BayCountDetails.Empirical)
	assert.Equal(t, 49.875, res.BayCountDetails.Empirical.EffectiveAreaPerBay)
	assert.Nil(t, res.BayCountDetails.Module)
}

func TestCompute_ZeroMezzanine(t *testing.T) {
	cfg := referenceConfig()
	cfg.MezzPercent = 0

	res := Compute(cfg)

	assert.Equal(t, 0.0, res.MezzCBM)
	assert.Equal(t, 0.0, res.Areas.MezzArea)
}

func TestCompute_SmallWarehouse(t *testing.T) {
	cfg := referenceConfig()
	cfg.Length = 40
	cfg.Width = 40
	cfg.BaselineCBM = 100

	res := Compute(cfg)

	assert.Less(t, res.BayCount, 10)
	assert.Equal(t, 4, res.BayCount)
	assert.Contains(t, fieldsOf(res.Validation.Warnings), "bayCount")
}

func TestCompute_DirectAreaInput(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.UseDirectAreaInput = true
	cfg.HDRackArea = 50000
	cfg.MezzanineArea = 20000

	res := Compute(cfg)

	assert.True(t, res.Areas.UseDirectAreaInput)
	assert.Equal(t, 38000.0, res.Areas.StagingArea)
	assert.Equal(t, 1002, res.BayCount) // floor(50000 / 49.875)
	assert.InDelta(t, 20000*7.2/model.CuftPerCBM, res.MezzCBM, 1e-9)
}

func TestCompute_DirectAreaOverflow(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Area = 100000
	cfg.UseDirectAreaInput = true
	cfg.HDRackArea = 80000
	cfg.MezzanineArea = 40000

	res := Compute(cfg)

	assert.Equal(t, 0.0, res.Areas.StagingArea)
	assert.Contains(t, fieldsOf(res.Validation.Errors), "hdRackArea")
}

func TestCompute_CrossAisleAffectsRows(t *testing.T) {
	cfg := referenceConfig()
	cfg.CrossAisleWidth = model.Float(6)

	res := Compute(cfg)

	require.NotNil(t, res.BayCountDetails.Module)
	assert.Equal(t, 37, res.BayCountDetails.Module.NumberOfRows)
	assert.Equal(t, 18*37, res.BayCount)
}

func TestCompute_MezzanineDecksMultiply(t *testing.T) {
	cfg := referenceConfig()
	single := Compute(cfg)

	cfg.MezzLevels = 2
	double := Compute(cfg)

	assert.InDelta(t, 2*single.MezzCBM, double.MezzCBM, 1e-9)
	assert.Equal(t, 2, double.Mezzanine.MezzLevels)
}

func TestCompute_Deterministic(t *testing.T) {
	for _, cfg := range []model.Config{model.DefaultConfig(), referenceConfig(), vnaConfig()} {
		first := Compute(cfg)
		second := Compute(cfg)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Compute is not deterministic (-first +second):\n%s", diff)
		}
	}
}

func TestCompute_MonotonicInAisleWidth(t *testing.T) {
	for _, module := range []bool{true, false} {
		prev := -1
		for aisle := 14.0; aisle >= 5; aisle-- {
			cfg := referenceConfig()
			cfg.UseModuleMethod = module
			cfg.MainAisleWidth = aisle
			res := Compute(cfg)
			assert.GreaterOrEqual(t, res.BayCount, prev, "module=%v aisle=%v", module, aisle)
			prev = res.BayCount
		}
	}
}

func TestCompute_ZeroBaselineIsDegenerate(t *testing.T) {
	cfg := referenceConfig()
	cfg.BaselineCBM = 0

	res := Compute(cfg)

	assert.Equal(t, 0.0, res.SpaceImprovementFactor)
	assert.False(t, res.SpaceImprovementDefined)
	assert.True(t, res.Validation.HasDegenerate())
	assert.Contains(t, fieldsOf(res.Validation.Errors), "baselineCBM")
}

func TestCompute_ZeroMultiplierIsDegenerate(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.AisleOverheadMultiplier = 0

	res := Compute(cfg)

	assert.Equal(t, 0, res.BayCount)
	assert.Contains(t, fieldsOf(res.Validation.Errors), "aisleOverheadMultiplier")
}

func TestCompute_NaNInputIsSanitized(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.BayLength = math.NaN()

	res := Compute(cfg)

	assert.True(t, res.Validation.HasDegenerate())
	assert.Contains(t, fieldsOf(res.Validation.Errors), "bayFootprint")
	assert.Equal(t, 0, res.BayCount)
	assert.Equal(t, 0.0, res.BayDimensions.BayFootprint)

	_, err := json.Marshal(res)
	require.NoError(t, err, "sanitized result must be JSON-encodable")
}

func TestCompute_HugeAreaIsDegenerate(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Area = 1e12

	res := Compute(cfg)

	assert.Equal(t, 0, res.BayCount)
	require.True(t, res.Validation.HasDegenerate())
	var degenerate []string
	for _, f := range res.Validation.Errors {
		if f.Kind == model.KindDegenerate {
			degenerate = append(degenerate, f.Field)
		}
	}
	assert.Contains(t, degenerate, "bayCount")
}

func TestCompute_HugeModuleLayoutIsDegenerate(t *testing.T) {
	cfg := referenceConfig()
	cfg.Length = 1e9
	cfg.Width = 1e9

	res := Compute(cfg)

	assert.Equal(t, model.MethodModule, res.BayCountDetails.Method)
	assert.Equal(t, 0, res.BayCount)
	assert.Contains(t, fieldsOf(res.Validation.Errors), "bayCount")
}

func TestCompute_EmptyConfig(t *testing.T) {
	res := Compute(model.Config{})

	assert.False(t, res.Validation.Valid)
	fields := fieldsOf(res.Validation.Errors)
	assert.Contains(t, fields, "area")
	assert.Contains(t, fields, "levels")
	assert.Contains(t, fields, "totalCBM")

	_, err := json.Marshal(res)
	require.NoError(t, err)
}
