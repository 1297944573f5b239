// Package soil converts farmer soil records into a uniform nutrient profile.
package soil

import (
	"math"

	"github.com/circufert/circufert-cli/internal/model"
)

// NeutralPH is assumed when no pH reading is available.
const NeutralPH = 7.0

// Profile maps nutrient name to its current soil level. The lime entry holds
// the soil pH, not a concentration.
type Profile map[string]float64

// profileKeys are always present in a normalized profile.
var profileKeys = []string{model.Nitrogen, model.Phosphorus, model.Carbon, model.Lime, model.Calcium}

// Normalize builds the profile for a farmer. The flat soil block wins over
// the composition block; a farmer with neither gets an all-zero profile.
func Normalize(f model.Farmer) Profile {
	p := make(Profile, len(profileKeys))
	for _, k := range profileKeys {
		p[k] = 0
	}

	switch {
	case f.SoilData != nil:
		sd := f.SoilData
		p[model.Nitrogen] = finite(sd.Nitrogen)
		p[model.Phosphorus] = finite(sd.Phosphorus)
		p[model.Carbon] = finite(sd.Carbon)
		p[model.Lime] = finite(sd.Lime)
		if sd.Calcium != nil {
			p[model.Calcium] = finite(*sd.Calcium)
		}
	case f.SoilComposition != nil:
		sc := f.SoilComposition
		p[model.Nitrogen] = finite(sc.NitrogenLevelPPM)
		p[model.Phosphorus] = finite(sc.PhosphorusLevelPPM)
		p[model.Carbon] = finite(sc.CarbonLevelPPM)
		p[model.Lime] = finite(sc.PHLevel)
		p[model.Calcium] = finite(sc.Minerals.CalciumPPM)
	}
	return p
}

// Level returns the current level of a nutrient, 0 when unknown.
func (p Profile) Level(nutrient string) float64 {
	return p[nutrient]
}

// PH returns the pH proxy, or NeutralPH when no reading exists.
func (p Profile) PH() float64 {
	if ph := p[model.Lime]; ph > 0 {
		return ph
	}
	return NeutralPH
}

// IsEmpty reports whether the profile carries no usable data. Callers must
// not read an empty profile as an extreme deficiency.
func (p Profile) IsEmpty() bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}

// finite maps NaN, infinities and negative readings to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
