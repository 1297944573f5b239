package model

// MonthRecord is one month of observed waste at a location.
type MonthRecord struct {
	Revenue                 float64  `json:"revenue"`
	FoodWasteKg             float64  `json:"food_waste_kg"`
	WasteFactor             float64  `json:"waste_factor"`
	NitrogenLevelPercentage *float64 `json:"nitrogen_level_percentage,omitempty"`
}

// MonthProjection is one month of projected waste at a location.
type MonthProjection struct {
	ProjectedRevenue float64 `json:"projected_revenue"`
	EstimatedWasteKg float64 `json:"estimated_waste_kg"`
}

// IncludedLocation is a sub-site rolled up into a location.
type IncludedLocation struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	DailyMeals int    `json:"daily_meals"`
}

// WasteLocation is a single food-service site. Historical and projected data
// are indexed year -> quarter -> month name.
type WasteLocation struct {
	ID                        string                                           `json:"id"`
	Name                      string                                           `json:"name"`
	Address                   string                                           `json:"address"`
	Capacity                  string                                           `json:"capacity,omitempty"`
	MealsPerDay               int                                              `json:"meals_per_day,omitempty"`
	HistoricalData            map[string]map[string]map[string]MonthRecord     `json:"historical_data"`
	RunningAverageWasteFactor float64                                          `json:"running_average_waste_factor"`
	ProjectedData             map[string]map[string]map[string]MonthProjection `json:"projected_data"`
	LocationsIncluded         []IncludedLocation                               `json:"locations_included,omitempty"`
}

// Historical returns the observed record for the given month, if present.
func (l *WasteLocation) Historical(year, quarter, month string) (MonthRecord, bool) {
	rec, ok := l.HistoricalData[year][quarter][month]
	return rec, ok
}

// Projected returns the projection for the given month, if present.
func (l *WasteLocation) Projected(year, quarter, month string) (MonthProjection, bool) {
	rec, ok := l.ProjectedData[year][quarter][month]
	return rec, ok
}

// Establishment groups the locations of one food-service operator.
type Establishment struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Locations []WasteLocation `json:"locations"`
}

// FoodServiceData is the root of the food-service dataset.
type FoodServiceData struct {
	FoodServiceEstablishments []Establishment `json:"food_service_establishments"`
}
