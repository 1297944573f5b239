package model

// Nutrient names shared by soil profiles, fertilizer components and targets.
const (
	Nitrogen   = "nitrogen"
	Phosphorus = "phosphorus"
	Carbon     = "carbon"
	Calcium    = "calcium"
	Magnesium  = "magnesium"
	Sulfur     = "sulfur"
	Lime       = "lime"
)

// TrackedNutrients lists nutrients in the order used for target comparison.
var TrackedNutrients = []string{Nitrogen, Phosphorus, Carbon, Calcium, Magnesium, Sulfur, Lime}
