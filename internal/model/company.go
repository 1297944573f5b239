package model

// Company is a fertilizer producer buying food waste and supplying farmers.
//
// WasteAllocationPercentage is carried for dataset compatibility only; the
// allocation engine reports percentages in its result and never writes here.
type Company struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	Location                  string   `json:"location"`
	Customers                 []Farmer `json:"customers"`
	CostPerKgEUR              float64  `json:"cost_per_kg_eur,omitempty"`
	MaxFoodWastePercentage    float64  `json:"max_food_waste_percentage,omitempty"`
	MonthlyCapacityKg         float64  `json:"monthly_capacity_kg,omitempty"`
	WasteAllocationPercentage float64  `json:"waste_allocation_percentage,omitempty"`
}

// TotalFarmHectares sums the farm sizes of all customers.
func (c *Company) TotalFarmHectares() float64 {
	var total float64
	for _, f := range c.Customers {
		total += f.TotalFarmSizeHectares
	}
	return total
}

// HasCropDetail reports whether any customer lists crops.
func (c *Company) HasCropDetail() bool {
	for _, f := range c.Customers {
		if len(f.Crops) > 0 {
			return true
		}
	}
	return false
}

// AgriculturalData is the root of the agricultural dataset.
type AgriculturalData struct {
	FertilizerCompanies []Company `json:"fertilizer_companies"`
}
