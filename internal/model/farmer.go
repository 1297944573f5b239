package model

// SoilData is the flat soil test block. Lime doubles as the pH reading.
type SoilData struct {
	Nitrogen   float64  `json:"nitrogen"`
	Phosphorus float64  `json:"phosphorus"`
	Carbon     float64  `json:"carbon"`
	Lime       float64  `json:"lime"`
	Calcium    *float64 `json:"calcium,omitempty"`
}

// Minerals holds secondary mineral concentrations in ppm.
type Minerals struct {
	CalciumPPM   float64 `json:"calcium_ppm"`
	MagnesiumPPM float64 `json:"magnesium_ppm"`
	SulfurPPM    float64 `json:"sulfur_ppm"`
}

// SoilComposition is the laboratory soil analysis block.
type SoilComposition struct {
	PHLevel                 float64  `json:"ph_level"`
	OrganicMatterPercentage float64  `json:"organic_matter_percentage"`
	NitrogenLevelPPM        float64  `json:"nitrogen_level_ppm"`
	PhosphorusLevelPPM      float64  `json:"phosphorus_level_ppm"`
	CarbonLevelPPM          float64  `json:"carbon_level_ppm"`
	Texture                 string   `json:"texture"`
	Minerals                Minerals `json:"minerals"`
}

// OptimalComposition is a crop's target soil composition in ppm.
type OptimalComposition struct {
	NitrogenPPM   float64 `json:"nitrogen_ppm"`
	PhosphorusPPM float64 `json:"phosphorus_ppm"`
	CarbonPPM     float64 `json:"carbon_ppm"`
	CalciumPPM    float64 `json:"calcium_ppm"`
	MagnesiumPPM  float64 `json:"magnesium_ppm"`
	SulfurPPM     float64 `json:"sulfur_ppm"`
}

// SoilRequirements lists a crop's per-hectare nutrient needs in kg.
// Optional needs are zero when absent from the dataset.
type SoilRequirements struct {
	IdealPH                     string              `json:"ideal_ph"`
	NitrogenNeedsKgPerHectare   float64             `json:"nitrogen_needs_kg_per_hectare"`
	PhosphorusNeedsKgPerHectare float64             `json:"phosphorus_needs_kg_per_hectare,omitempty"`
	CarbonNeedsKgPerHectare     float64             `json:"carbon_needs_kg_per_hectare,omitempty"`
	CalciumNeedsKgPerHectare    float64             `json:"calcium_needs_kg_per_hectare,omitempty"`
	MagnesiumNeedsKgPerHectare  float64             `json:"magnesium_needs_kg_per_hectare,omitempty"`
	SulfurNeedsKgPerHectare     float64             `json:"sulfur_needs_kg_per_hectare,omitempty"`
	OptimalSoilComposition      *OptimalComposition `json:"optimal_soil_composition,omitempty"`
}

// Crop is a single planted field on a farm.
type Crop struct {
	CropName            string           `json:"crop_name"`
	FieldSizeHectares   float64          `json:"field_size_hectares"`
	PlantingDate        string           `json:"planting_date"`
	ExpectedHarvestDate string           `json:"expected_harvest_date"`
	SoilRequirements    SoilRequirements `json:"soil_requirements"`
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// FarmLocation is the farmer's address summary.
type FarmLocation struct {
	City        string       `json:"city"`
	Region      string       `json:"region"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Farmer is a customer of a fertilizer company.
type Farmer struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	FarmName              string           `json:"farm_name"`
	Location              FarmLocation     `json:"location"`
	TotalFarmSizeHectares float64          `json:"total_farm_size_hectares"`
	SoilData              *SoilData        `json:"soil_data,omitempty"`
	SoilComposition       *SoilComposition `json:"soil_composition,omitempty"`
	Crops                 []Crop           `json:"crops,omitempty"`
}

// HasSoil reports whether either soil representation is present.
func (f *Farmer) HasSoil() bool {
	return f.SoilData != nil || f.SoilComposition != nil
}
