// Package dataset loads the input datasets into a pipeline snapshot.
package dataset

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/circufert/circufert-cli/internal/fetcher"
	"github.com/circufert/circufert-cli/internal/model"
	"github.com/circufert/circufert-cli/internal/pipeline"
)

// Sources names where each dataset lives: a local path or an http(s) URL.
// FoodService is optional.
type Sources struct {
	Fertilizers  string
	Agricultural string
	FoodService  string
}

// Validate checks that the required sources are set.
func (s Sources) Validate() error {
	if s.Fertilizers == "" {
		return eris.New("dataset: fertilizer catalog source is required")
	}
	if s.Agricultural == "" {
		return eris.New("dataset: agricultural data source is required")
	}
	return nil
}

// Load reads all datasets concurrently. The first failure cancels the rest.
func Load(ctx context.Context, f fetcher.Fetcher, src Sources) (*pipeline.Snapshot, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	snap := &pipeline.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		catalog, err := fetcher.ReadJSON[model.Catalog](gctx, f, src.Fertilizers)
		if err != nil {
			return eris.Wrap(err, "dataset: load fertilizer catalog")
		}
		snap.Catalog = *catalog
		return nil
	})

	g.Go(func() error {
		agri, err := fetcher.ReadJSON[model.AgriculturalData](gctx, f, src.Agricultural)
		if err != nil {
			return eris.Wrap(err, "dataset: load agricultural data")
		}
		snap.Agricultural = *agri
		return nil
	})

	if src.FoodService != "" {
		g.Go(func() error {
			food, err := fetcher.ReadJSON[model.FoodServiceData](gctx, f, src.FoodService)
			if err != nil {
				return eris.Wrap(err, "dataset: load food service data")
			}
			snap.FoodService = *food
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("dataset: loaded",
		zap.Int("fertilizers", len(snap.Catalog.Fertilizers)),
		zap.Int("companies", len(snap.Agricultural.FertilizerCompanies)),
		zap.Int("establishments", len(snap.FoodService.FoodServiceEstablishments)),
	)
	return snap, nil
}
