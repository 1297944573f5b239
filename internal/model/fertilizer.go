package model

import "strings"

// FertilizerComponent is a named share of a blend, in percent. Shares of a
// blend need not sum to 100.
type FertilizerComponent struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Fertilizer is a blend from the fertilizer catalog. BaseAmount is the
// reference dose in kg per hectare.
type Fertilizer struct {
	ID                int                   `json:"id"`
	Title             string                `json:"title"`
	BaseAmount        float64               `json:"baseAmount"`
	PredictedIncrease string                `json:"predictedIncrease"`
	Components        []FertilizerComponent `json:"components"`
	TargetCrops       []string              `json:"targetCrops,omitempty"`
}

// Component returns the first component whose name matches nutrient,
// ignoring case.
func (f *Fertilizer) Component(nutrient string) (FertilizerComponent, bool) {
	for _, c := range f.Components {
		if strings.EqualFold(c.Name, nutrient) {
			return c, true
		}
	}
	return FertilizerComponent{}, false
}

// Catalog is the root of the fertilizer dataset.
type Catalog struct {
	Fertilizers []Fertilizer `json:"fertilizers"`
}

// ByTitle returns the blend with the given title, or nil.
func (c *Catalog) ByTitle(title string) *Fertilizer {
	for i := range c.Fertilizers {
		if c.Fertilizers[i].Title == title {
			return &c.Fertilizers[i]
		}
	}
	return nil
}
