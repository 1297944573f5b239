package pipeline

import "github.com/circufert/circufert-cli/internal/model"

func ptr(v float64) *float64 { return &v }

func testSnapshot() *Snapshot {
	return &Snapshot{
		Catalog: model.Catalog{Fertilizers: []model.Fertilizer{
			{ID: 1, Title: "Nitro Mix", BaseAmount: 200, Components: []model.FertilizerComponent{
				{Name: "nitrogen", Percentage: 50},
			}},
			{ID: 2, Title: "Carbon Boost", BaseAmount: 400, Components: []model.FertilizerComponent{
				{Name: "carbon", Percentage: 40},
			}},
		}},
		Agricultural: model.AgriculturalData{FertilizerCompanies: []model.Company{
			{
				ID: "A", Name: "Green Cycle", CostPerKgEUR: 0.10, MaxFoodWastePercentage: 50,
				Customers: []model.Farmer{
					{
						ID: "f1", FarmName: "North Field", TotalFarmSizeHectares: 4,
						Location: model.FarmLocation{Coordinates: &model.Coordinates{Lat: 52.0, Long: 5.0}},
						SoilData: &model.SoilData{Nitrogen: 20},
						Crops: []model.Crop{{
							CropName: "Wheat", FieldSizeHectares: 2,
							SoilRequirements: model.SoilRequirements{NitrogenNeedsKgPerHectare: 100},
						}},
					},
					{ID: "f2", FarmName: "No Soil", TotalFarmSizeHectares: 2, Crops: []model.Crop{{
						CropName: "Barley", FieldSizeHectares: 2,
						SoilRequirements: model.SoilRequirements{NitrogenNeedsKgPerHectare: 80},
					}}},
				},
			},
			{
				ID: "B", Name: "Soil Works", CostPerKgEUR: 0.05, MaxFoodWastePercentage: 100,
				Customers: []model.Farmer{{ID: "f3", FarmName: "South Farm", TotalFarmSizeHectares: 10}},
			},
		}},
		FoodService: model.FoodServiceData{FoodServiceEstablishments: []model.Establishment{
			{ID: "e1", Name: "Bistro Group", Type: "Restaurant", Locations: []model.WasteLocation{{
				ID: "r1", Name: "Centre",
				HistoricalData: map[string]map[string]map[string]model.MonthRecord{
					"2024": {"Q1": {"March": {FoodWasteKg: 600, NitrogenLevelPercentage: ptr(3.2)}}},
				},
				ProjectedData: map[string]map[string]map[string]model.MonthProjection{
					"2024": {"Q2": {"April": {EstimatedWasteKg: 650}}},
				},
			}}},
			{ID: "e2", Name: "City Hospital", Type: "Hospital", Locations: []model.WasteLocation{{
				ID: "h1", Name: "Main",
				HistoricalData: map[string]map[string]map[string]model.MonthRecord{
					"2024": {"Q1": {"March": {FoodWasteKg: 400, NitrogenLevelPercentage: ptr(3.6)}}},
				},
			}}},
		}},
	}
}
