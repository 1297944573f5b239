package model

// CropRecommendation is the fertilizer advice for one crop field. Every
// amount is in kg for the whole field, never per hectare.
type CropRecommendation struct {
	CropName             string  `json:"cropName" yaml:"crop_name"`
	FieldSize            float64 `json:"fieldSize" yaml:"field_size"`
	FertilizerName       string  `json:"fertilizerName" yaml:"fertilizer_name"`
	FertilizerAmount     float64 `json:"fertilizerAmount" yaml:"fertilizer_amount"`
	NitrogenNeeded       float64 `json:"nitrogenNeeded" yaml:"nitrogen_needed"`
	PhosphorusNeeded     float64 `json:"phosphorusNeeded" yaml:"phosphorus_needed"`
	CarbonNeeded         float64 `json:"carbonNeeded" yaml:"carbon_needed"`
	NitrogenDeficiency   float64 `json:"nitrogenDeficiency" yaml:"nitrogen_deficiency"`
	PhosphorusDeficiency float64 `json:"phosphorusDeficiency" yaml:"phosphorus_deficiency"`
	CarbonDeficiency     float64 `json:"carbonDeficiency" yaml:"carbon_deficiency"`
	LimeDeficiency       float64 `json:"limeDeficiency" yaml:"lime_deficiency"`
	LimeNeeded           float64 `json:"limeNeeded" yaml:"lime_needed"`
	Quality              float64 `json:"quality" yaml:"quality"`
}

// FarmerRecommendations holds the crop advice for one farmer plus the
// coarser whole-farm blend figure.
type FarmerRecommendations struct {
	FarmerID            string               `json:"farmerId" yaml:"farmer_id"`
	FarmName            string               `json:"farmName" yaml:"farm_name"`
	FarmFertilizer      string               `json:"farmFertilizer,omitempty" yaml:"farm_fertilizer,omitempty"`
	CropRecommendations []CropRecommendation `json:"cropRecommendations" yaml:"crop_recommendations"`
}

// CompanyRecommendations groups farmer advice under their supplier.
type CompanyRecommendations struct {
	CompanyID             string                  `json:"companyId" yaml:"company_id"`
	CompanyName           string                  `json:"companyName" yaml:"company_name"`
	FarmerRecommendations []FarmerRecommendations `json:"farmerRecommendations" yaml:"farmer_recommendations"`
}
