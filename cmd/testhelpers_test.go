package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circufert/circufert-cli/internal/config"
)

var testdataDir = filepath.Join("..", "internal", "dataset", "testdata")

// testConfig points every data source at the dataset fixtures.
func testConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			Fertilizers:  filepath.Join(testdataDir, "fertilizers.json"),
			Agricultural: filepath.Join(testdataDir, "agricultural.json"),
			FoodService:  filepath.Join(testdataDir, "food_service.json"),
		},
		Allocation: config.AllocationConfig{
			EstablishmentType: "all",
			Period:            config.PeriodConfig{Year: "2024", Quarter: "Q1", Month: "March"},
			Projection:        config.PeriodConfig{Year: "2024", Quarter: "Q2", Month: "April"},
		},
		Export: config.ExportConfig{Format: "csv", Path: "fertilizer_requirements.csv"},
		Server: config.ServerConfig{Port: 8080, CORSOrigins: []string{"*"}},
		Fetch:  config.FetchConfig{TimeoutSecs: 5, MaxRetries: 1, RatePerSec: 5, Burst: 5},
		Log:    config.LogConfig{Level: "info", Format: "json"},
	}
}

func testEnv(t *testing.T) *runEnv {
	t.Helper()
	env, err := initEnv(context.Background(), testConfig(), "run")
	require.NoError(t, err)
	return env
}
