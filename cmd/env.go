package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/circufert/circufert-cli/internal/config"
	"github.com/circufert/circufert-cli/internal/dataset"
	"github.com/circufert/circufert-cli/internal/fetcher"
	"github.com/circufert/circufert-cli/internal/nutrient"
	"github.com/circufert/circufert-cli/internal/pipeline"
	"github.com/circufert/circufert-cli/internal/wastestats"
)

// runEnv is a loaded snapshot plus the run options derived from config.
type runEnv struct {
	Snapshot *pipeline.Snapshot
	Options  pipeline.Options
}

// initEnv validates the config for mode, loads the datasets and resolves
// the nutrient rate table.
func initEnv(ctx context.Context, c *config.Config, mode string) (*runEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	opts, err := runOptions(c)
	if err != nil {
		return nil, err
	}

	snap, err := dataset.Load(ctx, newFetcher(c.Fetch), dataSources(c.Data))
	if err != nil {
		return nil, err
	}

	return &runEnv{Snapshot: snap, Options: opts}, nil
}

func newFetcher(c config.FetchConfig) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.UserAgent,
		Timeout:    time.Duration(c.TimeoutSecs) * time.Second,
		MaxRetries: c.MaxRetries,
		RatePerSec: c.RatePerSec,
		Burst:      c.Burst,
	})
}

func dataSources(c config.DataConfig) dataset.Sources {
	return dataset.Sources{
		Fertilizers:  c.Fertilizers,
		Agricultural: c.Agricultural,
		FoodService:  c.FoodService,
	}
}

func runOptions(c *config.Config) (pipeline.Options, error) {
	rates, err := nutrient.LoadTable(c.Data.RatesFile)
	if err != nil {
		return pipeline.Options{}, eris.Wrap(err, "load nutrient rates")
	}

	return pipeline.Options{
		EstablishmentType:   c.Allocation.EstablishmentType,
		ForceFullAllocation: c.Allocation.ForceFullAllocation,
		PoolKg:              c.Allocation.PoolKg,
		Period:              period(c.Allocation.Period),
		Projection:          period(c.Allocation.Projection),
		Rates:               rates,
	}, nil
}

func period(p config.PeriodConfig) wastestats.Period {
	return wastestats.Period{Year: p.Year, Quarter: p.Quarter, Month: p.Month}
}
