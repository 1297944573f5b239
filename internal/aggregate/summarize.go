// Package aggregate rolls crop recommendations up per company and renders
// the fertilizer requirement export.
package aggregate

import (
	"math"

	"github.com/circufert/circufert-cli/internal/model"
)

// Summary is the fertilizer demand of one company's customers, in kg.
type Summary struct {
	CompanyID        string             `json:"companyId" yaml:"company_id"`
	CompanyName      string             `json:"companyName" yaml:"company_name"`
	FertilizerTotals map[string]float64 `json:"fertilizerTotals" yaml:"fertilizer_totals"`
	TotalAmount      float64            `json:"totalAmount" yaml:"total_amount"`
}

// Summarize totals the recommended amounts per blend. Amounts are already
// whole-field figures and are summed as-is. Malformed amounts count as 0.
func Summarize(rec model.CompanyRecommendations) Summary {
	s := Summary{
		CompanyID:        rec.CompanyID,
		CompanyName:      rec.CompanyName,
		FertilizerTotals: make(map[string]float64),
	}

	for _, farmer := range rec.FarmerRecommendations {
		for _, crop := range farmer.CropRecommendations {
			if crop.FertilizerName == "" {
				continue
			}
			amount := safe(crop.FertilizerAmount)
			s.FertilizerTotals[crop.FertilizerName] += amount
			s.TotalAmount += amount
		}
	}
	return s
}

// SummarizeAll summarizes every company, keeping input order.
func SummarizeAll(recs []model.CompanyRecommendations) []Summary {
	out := make([]Summary, 0, len(recs))
	for _, r := range recs {
		out = append(out, Summarize(r))
	}
	return out
}

// NutrientRequirements converts blend totals into nutrient mass: each
// component contributes amount * percentage / 100 under its own name.
// Blends missing from the catalog contribute nothing.
func NutrientRequirements(fertilizerTotals map[string]float64, catalog *model.Catalog) map[string]float64 {
	out := make(map[string]float64)
	if catalog == nil {
		return out
	}

	for name, amount := range fertilizerTotals {
		blend := catalog.ByTitle(name)
		if blend == nil {
			continue
		}
		for _, c := range blend.Components {
			out[c.Name] += safe(safe(amount) * c.Percentage / 100)
		}
	}
	return out
}

// safe maps NaN and infinities to 0.
func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
