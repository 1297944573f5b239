package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circufert/circufert-cli/internal/model"
)

func companyRecs(id, name string, crops ...model.CropRecommendation) model.CompanyRecommendations {
	return model.CompanyRecommendations{
		CompanyID:   id,
		CompanyName: name,
		FarmerRecommendations: []model.FarmerRecommendations{
			{FarmerID: id + "-f1", CropRecommendations: crops},
		},
	}
}

func rec(fertilizer string, amount, field float64) model.CropRecommendation {
	return model.CropRecommendation{FertilizerName: fertilizer, FertilizerAmount: amount, FieldSize: field}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	s := Summarize(companyRecs("c1", "Green Cycle",
		rec("Nitro Mix", 800, 2),
		rec("Carbon Boost", 150, 5),
		rec("Nitro Mix", 200, 1),
	))

	assert.Equal(t, "c1", s.CompanyID)
	assert.Equal(t, "Green Cycle", s.CompanyName)
	// amounts are whole-field figures, never multiplied by field size again
	assert.Equal(t, map[string]float64{"Nitro Mix": 1000, "Carbon Boost": 150}, s.FertilizerTotals)
	assert.Equal(t, 1150.0, s.TotalAmount)
}

func TestSummarize_MalformedAmounts(t *testing.T) {
	t.Parallel()
	s := Summarize(companyRecs("c1", "X",
		rec("A", math.NaN(), 1),
		rec("A", 10, 1),
		rec("B", math.Inf(1), 1),
		rec("", 99, 1),
	))

	assert.Equal(t, 10.0, s.FertilizerTotals["A"])
	assert.Equal(t, 0.0, s.FertilizerTotals["B"])
	assert.Equal(t, 10.0, s.TotalAmount)
	assert.False(t, math.IsNaN(s.TotalAmount))
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()
	s := Summarize(model.CompanyRecommendations{CompanyID: "c1"})
	assert.Empty(t, s.FertilizerTotals)
	assert.Zero(t, s.TotalAmount)
	assert.Empty(t, SummarizeAll(nil))
}

func TestNutrientRequirements(t *testing.T) {
	t.Parallel()
	catalog := &model.Catalog{Fertilizers: []model.Fertilizer{
		{Title: "Nitro Mix", Components: []model.FertilizerComponent{
			{Name: "Nitrogen", Percentage: 50},
			{Name: "Carbon", Percentage: 20},
		}},
		{Title: "Carbon Boost", Components: []model.FertilizerComponent{
			{Name: "Carbon", Percentage: 40},
		}},
	}}

	got := NutrientRequirements(map[string]float64{
		"Nitro Mix":    1000,
		"Carbon Boost": 500,
		"Unknown":      300,
	}, catalog)

	assert.InDelta(t, 500.0, got["Nitrogen"], 1e-9)
	assert.InDelta(t, 400.0, got["Carbon"], 1e-9)
	assert.Len(t, got, 2)

	assert.Empty(t, NutrientRequirements(map[string]float64{"Nitro Mix": 10}, nil))
}
