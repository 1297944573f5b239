package matching

import (
	"math"

	"github.com/circufert/circufert-cli/internal/model"
	"github.com/circufert/circufert-cli/internal/soil"
)

// pH and dosing heuristics.
const (
	OptimalPH        = 6.5
	LimingPH         = 6.0
	limePerPHUnit    = 200.0 // kg lime per pH unit per hectare
	limeFlatPerHa    = 500.0 // kg lime per hectare below LimingPH
	maintenanceShare = 0.1   // share of the base dose applied without deficiency
	qualityPenalty   = 0.75  // quality points lost per kg/ha of deficiency
)

// primaryNutrients are dosed from the crop's own requirements.
var primaryNutrients = []string{model.Nitrogen, model.Phosphorus, model.Carbon}

// cropNutrient is one nutrient's per-hectare need, comparison target and
// deficiency for a crop.
type cropNutrient struct {
	need       float64
	target     float64
	deficiency float64
}

func nutrientFor(crop model.Crop, profile soil.Profile, nutrient string) cropNutrient {
	req := crop.SoilRequirements

	var need, optimal float64
	switch nutrient {
	case model.Nitrogen:
		need = req.NitrogenNeedsKgPerHectare
		if req.OptimalSoilComposition != nil {
			optimal = req.OptimalSoilComposition.NitrogenPPM
		}
	case model.Phosphorus:
		need = req.PhosphorusNeedsKgPerHectare
		if req.OptimalSoilComposition != nil {
			optimal = req.OptimalSoilComposition.PhosphorusPPM
		}
	case model.Carbon:
		need = req.CarbonNeedsKgPerHectare
		if req.OptimalSoilComposition != nil {
			optimal = req.OptimalSoilComposition.CarbonPPM
		}
	}
	need = nonNegative(need)

	target := need
	if req.OptimalSoilComposition != nil {
		target = nonNegative(optimal)
	}

	return cropNutrient{
		need:       need,
		target:     target,
		deficiency: math.Max(0, target-profile.Level(nutrient)),
	}
}

// CropAmount returns the kg of blend to apply to the whole field. Each blend
// component covering a deficient nutrient adds pct/100 * deficiency/target to
// the efficiency; the dose is base * mean efficiency * field size. Without
// any covered deficiency a maintenance dose of 10% of base is used.
func CropAmount(crop model.Crop, profile soil.Profile, blend *model.Fertilizer) float64 {
	if blend == nil {
		return 0
	}
	field := fieldSize(crop)

	var efficiency float64
	var matches int
	for _, nutrient := range primaryNutrients {
		c, ok := blend.Component(nutrient)
		if !ok {
			continue
		}
		n := nutrientFor(crop, profile, nutrient)
		if n.deficiency <= 0 {
			continue
		}
		efficiency += (c.Percentage / 100) * ratio(n.deficiency, n.target)
		matches++
	}

	if matches > 0 {
		return math.Round(blend.BaseAmount * (efficiency / float64(matches)) * field)
	}
	return math.Round(blend.BaseAmount * maintenanceShare * field)
}

// LimeFigures returns the two independent lime heuristics for a field:
// the pH-gap deficiency and the flat dose for acidic soil.
func LimeFigures(ph, field float64) (deficiency, needed float64) {
	if ph < OptimalPH {
		deficiency = math.Round((OptimalPH - ph) * limePerPHUnit * field)
	}
	if ph < LimingPH {
		needed = math.Round(limeFlatPerHa * field)
	}
	return deficiency, needed
}

// DeriveCropRecommendation assembles the advice for one crop with the chosen
// blend. Needs and deficiencies are scaled to the whole field. A nil blend
// yields nil.
func DeriveCropRecommendation(crop model.Crop, profile soil.Profile, blend *model.Fertilizer) *model.CropRecommendation {
	if blend == nil {
		return nil
	}
	field := fieldSize(crop)

	n := nutrientFor(crop, profile, model.Nitrogen)
	p := nutrientFor(crop, profile, model.Phosphorus)
	c := nutrientFor(crop, profile, model.Carbon)
	limeDeficiency, limeNeeded := LimeFigures(profile.PH(), field)

	rec := &model.CropRecommendation{
		CropName:             crop.CropName,
		FieldSize:            field,
		FertilizerName:       blend.Title,
		FertilizerAmount:     CropAmount(crop, profile, blend),
		NitrogenNeeded:       n.need * field,
		PhosphorusNeeded:     p.need * field,
		CarbonNeeded:         c.need * field,
		NitrogenDeficiency:   n.deficiency * field,
		PhosphorusDeficiency: p.deficiency * field,
		CarbonDeficiency:     c.deficiency * field,
		LimeDeficiency:       limeDeficiency,
		LimeNeeded:           limeNeeded,
	}
	rec.Quality = CropQuality(rec)
	return rec
}

// CropQuality rates how well the soil already meets the crop's needs:
// 100 minus 0.75 per kg/ha of remaining deficiency, floored at 0 and rounded
// to one decimal.
func CropQuality(rec *model.CropRecommendation) float64 {
	if rec == nil || rec.FieldSize <= 0 {
		return 0
	}

	var perHectare float64
	for _, d := range []float64{rec.NitrogenDeficiency, rec.PhosphorusDeficiency, rec.CarbonDeficiency, rec.LimeDeficiency} {
		if d > 0 {
			perHectare += d / rec.FieldSize
		}
	}

	score := math.Max(0, 100-perHectare*qualityPenalty)
	return math.Round(score*10) / 10
}

// ratio divides, returning 0 for a non-positive denominator.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
