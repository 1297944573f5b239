// Package matching selects fertilizer blends for crops and farms by mean
// squared error against target soil levels, and derives per-crop amounts.
package matching

import (
	"math"

	"github.com/circufert/circufert-cli/internal/model"
	"github.com/circufert/circufert-cli/internal/soil"
)

// Targets maps nutrient name to the desired soil level after application.
// Nutrients with a target <= 0 are not compared.
type Targets map[string]float64

// MeanSquaredError scores a blend against targets. Each compared nutrient
// contributes (target - expected)^2 where expected adds pct/100 * baseAmount
// to the current level when the blend carries that nutrient. A blend with no
// compared nutrients scores math.MaxFloat64.
func MeanSquaredError(profile soil.Profile, targets Targets, blend *model.Fertilizer) float64 {
	var sum float64
	var compared int

	for _, nutrient := range model.TrackedNutrients {
		target := targets[nutrient]
		if !(target > 0) {
			continue
		}

		current := profile.Level(nutrient)
		expected := current
		if c, ok := blend.Component(nutrient); ok {
			expected = current + (c.Percentage/100)*blend.BaseAmount
		}

		diff := target - expected
		sum += diff * diff
		compared++
	}

	if compared == 0 {
		return math.MaxFloat64
	}
	return sum / float64(compared)
}

// BestMatch returns the candidate with the strictly lowest mean squared
// error. Ties keep the earlier candidate. The result points into candidates
// and is nil only when candidates is empty.
func BestMatch(profile soil.Profile, targets Targets, candidates []model.Fertilizer) *model.Fertilizer {
	var best *model.Fertilizer
	var bestMSE float64

	for i := range candidates {
		mse := MeanSquaredError(profile, targets, &candidates[i])
		if best == nil || mse < bestMSE {
			best = &candidates[i]
			bestMSE = mse
		}
	}
	return best
}

// CropTargets builds the comparison targets for a single crop. The optimal
// soil composition wins when present; otherwise each target is the current
// level plus the per-hectare need. A sub-optimal pH adds a lime target.
func CropTargets(crop model.Crop, profile soil.Profile) Targets {
	req := crop.SoilRequirements
	t := make(Targets, len(model.TrackedNutrients))

	if opt := req.OptimalSoilComposition; opt != nil {
		t[model.Nitrogen] = opt.NitrogenPPM
		t[model.Phosphorus] = opt.PhosphorusPPM
		t[model.Carbon] = opt.CarbonPPM
		t[model.Calcium] = profile.Level(model.Calcium) + req.CalciumNeedsKgPerHectare
		t[model.Magnesium] = opt.MagnesiumPPM
		t[model.Sulfur] = opt.SulfurPPM
	} else {
		t[model.Nitrogen] = profile.Level(model.Nitrogen) + req.NitrogenNeedsKgPerHectare
		t[model.Phosphorus] = profile.Level(model.Phosphorus) + req.PhosphorusNeedsKgPerHectare
		t[model.Carbon] = profile.Level(model.Carbon) + req.CarbonNeedsKgPerHectare
		t[model.Calcium] = profile.Level(model.Calcium) + req.CalciumNeedsKgPerHectare
		t[model.Magnesium] = req.MagnesiumNeedsKgPerHectare
		t[model.Sulfur] = req.SulfurNeedsKgPerHectare
	}

	if ph := profile.PH(); ph < OptimalPH {
		t[model.Lime] = math.Round((OptimalPH - ph) * limePerPHUnit * fieldSize(crop))
	}
	return t
}

// FarmTargets blends all crops of a farm into one area-weighted target.
// Nutrients without an optimal composition fall back to the current level
// plus the area-weighted need. A farm without crop area has no targets.
func FarmTargets(farmer model.Farmer, profile soil.Profile) Targets {
	var area float64
	needs := make(map[string]float64, 3)
	optimal := make(map[string]float64, 3)

	for _, crop := range farmer.Crops {
		a := fieldSize(crop)
		area += a

		req := crop.SoilRequirements
		needs[model.Nitrogen] += req.NitrogenNeedsKgPerHectare * a
		needs[model.Phosphorus] += req.PhosphorusNeedsKgPerHectare * a
		needs[model.Carbon] += req.CarbonNeedsKgPerHectare * a

		if opt := req.OptimalSoilComposition; opt != nil {
			optimal[model.Nitrogen] += opt.NitrogenPPM * a
			optimal[model.Phosphorus] += opt.PhosphorusPPM * a
			optimal[model.Carbon] += opt.CarbonPPM * a
		}
	}

	if area <= 0 {
		return Targets{}
	}

	t := make(Targets, len(model.TrackedNutrients))
	for _, nutrient := range model.TrackedNutrients {
		target := optimal[nutrient] / area
		if target == 0 {
			target = profile.Level(nutrient) + needs[nutrient]/area
		}
		t[nutrient] = target
	}
	return t
}

// BestForCrop picks the blend for one crop on the given soil.
func BestForCrop(crop model.Crop, profile soil.Profile, candidates []model.Fertilizer) *model.Fertilizer {
	return BestMatch(profile, CropTargets(crop, profile), candidates)
}

// BestForFarm picks one blend for the whole farm. It is the coarse figure
// shown next to the per-crop advice and is nil for farmers without soil data
// or crop area. Without crop area every blend would score math.MaxFloat64
// and the first catalog entry would win by position alone, so no blend is
// reported instead.
func BestForFarm(farmer model.Farmer, candidates []model.Fertilizer) *model.Fertilizer {
	if !farmer.HasSoil() {
		return nil
	}
	profile := soil.Normalize(farmer)
	targets := FarmTargets(farmer, profile)
	if len(targets) == 0 {
		return nil
	}
	return BestMatch(profile, targets, candidates)
}

// fieldSize returns the crop's area, treating malformed values as 0.
func fieldSize(crop model.Crop) float64 {
	return nonNegative(crop.FieldSizeHectares)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
