package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data       DataConfig       `yaml:"data" mapstructure:"data"`
	Allocation AllocationConfig `yaml:"allocation" mapstructure:"allocation"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the input datasets. Each source is a local path or an
// http(s) URL.
type DataConfig struct {
	Fertilizers  string `yaml:"fertilizers" mapstructure:"fertilizers"`
	Agricultural string `yaml:"agricultural" mapstructure:"agricultural"`
	FoodService  string `yaml:"food_service" mapstructure:"food_service"`
	RatesFile    string `yaml:"rates_file" mapstructure:"rates_file"`
}

// PeriodConfig addresses one month of the food-service data.
type PeriodConfig struct {
	Year    string `yaml:"year" mapstructure:"year"`
	Quarter string `yaml:"quarter" mapstructure:"quarter"`
	Month   string `yaml:"month" mapstructure:"month"`
}

// AllocationConfig configures the waste allocation run.
type AllocationConfig struct {
	EstablishmentType   string       `yaml:"establishment_type" mapstructure:"establishment_type"`
	PoolKg              float64      `yaml:"pool_kg" mapstructure:"pool_kg"`
	ForceFullAllocation bool         `yaml:"force_full_allocation" mapstructure:"force_full_allocation"`
	Period              PeriodConfig `yaml:"period" mapstructure:"period"`
	Projection          PeriodConfig `yaml:"projection" mapstructure:"projection"`
}

// ExportConfig configures the fertilizer requirement export.
type ExportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the read-only API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// FetchConfig configures remote dataset downloads.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst       int     `yaml:"burst" mapstructure:"burst"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CIRCUFERT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.fertilizers", "data/fertilizers.json")
	v.SetDefault("data.agricultural", "data/agricultural_data.json")
	v.SetDefault("data.food_service", "data/food_service_data.json")
	v.SetDefault("data.rates_file", "")
	v.SetDefault("allocation.establishment_type", "all")
	v.SetDefault("allocation.pool_kg", 0)
	v.SetDefault("allocation.force_full_allocation", false)
	v.SetDefault("allocation.period.year", "2024")
	v.SetDefault("allocation.period.quarter", "Q1")
	v.SetDefault("allocation.period.month", "March")
	v.SetDefault("allocation.projection.year", "2024")
	v.SetDefault("allocation.projection.quarter", "Q2")
	v.SetDefault("allocation.projection.month", "April")
	v.SetDefault("export.format", "csv")
	v.SetDefault("export.path", "fertilizer_requirements.csv")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("fetch.burst", 5)
	v.SetDefault("fetch.user_agent", "circufert/1.0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are "run"
// for the one-shot commands and "serve" for the API server.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "run":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Data.Fertilizers == "" {
		errs = append(errs, "data.fertilizers is required")
	}
	if c.Data.Agricultural == "" {
		errs = append(errs, "data.agricultural is required")
	}
	if c.Allocation.PoolKg < 0 {
		errs = append(errs, "allocation.pool_kg must be >= 0")
	}
	if !c.Allocation.Period.complete() {
		errs = append(errs, "allocation.period needs year, quarter and month")
	}
	if !c.Allocation.Projection.complete() {
		errs = append(errs, "allocation.projection needs year, quarter and month")
	}
	switch c.Export.Format {
	case "csv", "xlsx":
	default:
		errs = append(errs, "export.format must be csv or xlsx")
	}
	if c.Fetch.MaxRetries < 0 {
		errs = append(errs, "fetch.max_retries must be >= 0")
	}
	if c.Fetch.RatePerSec < 0 {
		errs = append(errs, "fetch.rate_per_sec must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (p PeriodConfig) complete() bool {
	return p.Year != "" && p.Quarter != "" && p.Month != ""
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
