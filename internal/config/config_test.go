package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/fertilizers.json", cfg.Data.Fertilizers)
	assert.Equal(t, "data/agricultural_data.json", cfg.Data.Agricultural)
	assert.Equal(t, "data/food_service_data.json", cfg.Data.FoodService)
	assert.Empty(t, cfg.Data.RatesFile)
	assert.Equal(t, "all", cfg.Allocation.EstablishmentType)
	assert.Zero(t, cfg.Allocation.PoolKg)
	assert.False(t, cfg.Allocation.ForceFullAllocation)
	assert.Equal(t, PeriodConfig{Year: "2024", Quarter: "Q1", Month: "March"}, cfg.Allocation.Period)
	assert.Equal(t, PeriodConfig{Year: "2024", Quarter: "Q2", Month: "April"}, cfg.Allocation.Projection)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "fertilizer_requirements.csv", cfg.Export.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.InDelta(t, 5.0, cfg.Fetch.RatePerSec, 0.001)
	assert.Equal(t, 5, cfg.Fetch.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate("run"))
	assert.NoError(t, cfg.Validate("serve"))
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  fertilizers: https://data.example.org/fertilizers.json
allocation:
  establishment_type: Hospital
  pool_kg: 2500
  force_full_allocation: true
  period:
    month: February
export:
  format: xlsx
  path: out.xlsx
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://data.example.org/fertilizers.json", cfg.Data.Fertilizers)
	assert.Equal(t, "Hospital", cfg.Allocation.EstablishmentType)
	assert.InDelta(t, 2500.0, cfg.Allocation.PoolKg, 0.001)
	assert.True(t, cfg.Allocation.ForceFullAllocation)
	assert.Equal(t, PeriodConfig{Year: "2024", Quarter: "Q1", Month: "February"}, cfg.Allocation.Period)
	assert.Equal(t, "xlsx", cfg.Export.Format)
	assert.Equal(t, "out.xlsx", cfg.Export.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, "data/agricultural_data.json", cfg.Data.Agricultural)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
export:
  format: xlsx
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CIRCUFERT_EXPORT_FORMAT", "csv")
	t.Setenv("CIRCUFERT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CIRCUFERT_SERVER_PORT", "3000")
	t.Setenv("CIRCUFERT_ALLOCATION_POOL_KG", "1200.5")
	t.Setenv("CIRCUFERT_DATA_FOOD_SERVICE", "/srv/data/food.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.InDelta(t, 1200.5, cfg.Allocation.PoolKg, 0.001)
	assert.Equal(t, "/srv/data/food.json", cfg.Data.FoodService)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.Fertilizers = "data/fertilizers.json"
	cfg.Data.Agricultural = "data/agricultural_data.json"
	cfg.Allocation.Period = PeriodConfig{Year: "2024", Quarter: "Q1", Month: "March"}
	cfg.Allocation.Projection = PeriodConfig{Year: "2024", Quarter: "Q2", Month: "April"}
	cfg.Export.Format = "csv"
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate_Run(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("run"))

	// port is only checked when serving
	cfg.Server.Port = 0
	assert.NoError(t, cfg.Validate("run"))
}

func TestValidate_MissingData(t *testing.T) {
	cfg := validDefaults()
	cfg.Data.Fertilizers = ""
	cfg.Data.Agricultural = ""

	err := cfg.Validate("run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.fertilizers is required")
	assert.Contains(t, err.Error(), "data.agricultural is required")
}

func TestValidate_Allocation(t *testing.T) {
	cfg := validDefaults()
	cfg.Allocation.PoolKg = -1
	cfg.Allocation.Period.Month = ""

	err := cfg.Validate("run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocation.pool_kg must be >= 0")
	assert.Contains(t, err.Error(), "allocation.period needs year, quarter and month")
}

func TestValidate_ExportFormat(t *testing.T) {
	cfg := validDefaults()
	for _, format := range []string{"csv", "xlsx"} {
		cfg.Export.Format = format
		assert.NoError(t, cfg.Validate("run"))
	}

	cfg.Export.Format = "pdf"
	err := cfg.Validate("run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export.format must be csv or xlsx")
}

func TestValidate_Fetch(t *testing.T) {
	cfg := validDefaults()
	cfg.Fetch.MaxRetries = -1
	cfg.Fetch.RatePerSec = -2

	err := cfg.Validate("run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.max_retries must be >= 0")
	assert.Contains(t, err.Error(), "fetch.rate_per_sec must be >= 0")
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()

	for _, port := range []int{0, -1, 70000} {
		cfg.Server.Port = port
		err := cfg.Validate("serve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.port must be > 0")
	}
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
