// Package pipeline runs the recommendation and allocation engine once over
// a loaded data snapshot.
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circufert/circufert-cli/internal/aggregate"
	"github.com/circufert/circufert-cli/internal/allocation"
	"github.com/circufert/circufert-cli/internal/geo"
	"github.com/circufert/circufert-cli/internal/matching"
	"github.com/circufert/circufert-cli/internal/model"
	"github.com/circufert/circufert-cli/internal/nutrient"
	"github.com/circufert/circufert-cli/internal/soil"
	"github.com/circufert/circufert-cli/internal/wastestats"
)

// Snapshot is one consistent set of the three input datasets.
type Snapshot struct {
	Catalog      model.Catalog
	Agricultural model.AgriculturalData
	FoodService  model.FoodServiceData
}

// Options tune a run. A zero PoolKg derives the pool from the food-service
// data for Period and EstablishmentType. Zero periods use the wastestats
// defaults and a nil Rates table uses nutrient.DefaultTable.
type Options struct {
	EstablishmentType   string
	ForceFullAllocation bool
	PoolKg              float64
	Period              wastestats.Period
	Projection          wastestats.Period
	Rates               nutrient.Table
}

// Phase records the wall time of one pipeline step.
type Phase struct {
	Name       string `json:"name" yaml:"name"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
}

// Report is the complete output of one run.
type Report struct {
	RunID             string                         `json:"run_id" yaml:"run_id"`
	GeneratedAt       time.Time                      `json:"generated_at" yaml:"generated_at"`
	EstablishmentType string                         `json:"establishment_type" yaml:"establishment_type"`
	Recommendations   []model.CompanyRecommendations `json:"recommendations" yaml:"recommendations"`
	Summaries         []aggregate.Summary            `json:"summaries" yaml:"summaries"`
	Nutrients         map[string]map[string]float64  `json:"nutrients" yaml:"nutrients"`
	Export            aggregate.Table                `json:"export" yaml:"export"`
	Allocation        *allocation.Result             `json:"allocation" yaml:"allocation"`
	FarmAreaShares    map[string]int                 `json:"farm_area_shares" yaml:"farm_area_shares"`
	WasteStatus       wastestats.Status              `json:"waste_status" yaml:"waste_status"`
	ServiceAreas      []geo.ServiceArea              `json:"service_areas" yaml:"service_areas"`
	Phases            []Phase                        `json:"phases" yaml:"phases"`
}

// Run executes every step over the snapshot. The snapshot is read only.
func Run(snap *Snapshot, opts Options) *Report {
	if snap == nil {
		snap = &Snapshot{}
	}
	opts = opts.withDefaults()

	report := &Report{
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		EstablishmentType: opts.EstablishmentType,
	}
	log := zap.L().With(zap.String("run_id", report.RunID))
	log.Info("pipeline: starting run",
		zap.Int("companies", len(snap.Agricultural.FertilizerCompanies)),
		zap.Int("fertilizers", len(snap.Catalog.Fertilizers)),
	)

	track := func(name string, fn func()) {
		start := time.Now()
		fn()
		d := time.Since(start).Milliseconds()
		report.Phases = append(report.Phases, Phase{Name: name, DurationMS: d})
		log.Debug("pipeline: phase complete", zap.String("phase", name), zap.Int64("duration_ms", d))
	}

	companies := snap.Agricultural.FertilizerCompanies

	track("recommend", func() {
		report.Recommendations = Recommend(companies, snap.Catalog.Fertilizers)
	})

	track("aggregate", func() {
		report.Summaries = aggregate.SummarizeAll(report.Recommendations)
		report.Nutrients = make(map[string]map[string]float64, len(report.Summaries))
		for _, s := range report.Summaries {
			report.Nutrients[s.CompanyID] = aggregate.NutrientRequirements(s.FertilizerTotals, &snap.Catalog)
		}
		report.Export = aggregate.ExportTable(report.Summaries)
	})

	track("waste_status", func() {
		report.WasteStatus = wastestats.ComputeStatus(&snap.FoodService, opts.Period, opts.Projection)
	})

	track("allocate", func() {
		report.Allocation = Allocate(snap, opts)
		report.FarmAreaShares = allocation.FarmAreaShares(companies)
	})

	track("service_areas", func() {
		report.ServiceAreas = geo.Areas(companies)
	})

	log.Info("pipeline: run complete",
		zap.Float64("pool_kg", report.Allocation.PoolKg),
		zap.Float64("allocated_kg", report.Allocation.AllocatedKg),
		zap.Float64("unallocated_kg", report.Allocation.UnallocatedKg),
		zap.Int("summaries", len(report.Summaries)),
	)
	return report
}

// Allocate distributes the pool over the snapshot's companies. A zero
// PoolKg is derived from the food-service data.
func Allocate(snap *Snapshot, opts Options) *allocation.Result {
	opts = opts.withDefaults()
	pool := opts.PoolKg
	if pool <= 0 {
		pool = wastestats.PoolKg(&snap.FoodService, opts.Period, opts.EstablishmentType)
	}
	return allocation.Allocate(allocation.Request{
		Companies:           snap.Agricultural.FertilizerCompanies,
		TotalWasteKg:        pool,
		EstablishmentType:   opts.EstablishmentType,
		ForceFullAllocation: opts.ForceFullAllocation,
		Rates:               opts.Rates,
	})
}

func (o Options) withDefaults() Options {
	if o.Period.IsZero() {
		o.Period = wastestats.DefaultPeriod
	}
	if o.Projection.IsZero() {
		o.Projection = wastestats.DefaultProjection
	}
	if o.Rates == nil {
		o.Rates = nutrient.DefaultTable()
	}
	return o
}

// Recommend derives crop advice for every customer of every company.
func Recommend(companies []model.Company, catalog []model.Fertilizer) []model.CompanyRecommendations {
	out := make([]model.CompanyRecommendations, 0, len(companies))
	for _, c := range companies {
		rec := model.CompanyRecommendations{
			CompanyID:             c.ID,
			CompanyName:           c.Name,
			FarmerRecommendations: make([]model.FarmerRecommendations, 0, len(c.Customers)),
		}
		for _, f := range c.Customers {
			rec.FarmerRecommendations = append(rec.FarmerRecommendations, RecommendFarmer(f, catalog))
		}
		out = append(out, rec)
	}
	return out
}

// RecommendFarmer derives the advice for one farmer. Farmers without usable
// soil data get no crop advice.
func RecommendFarmer(f model.Farmer, catalog []model.Fertilizer) model.FarmerRecommendations {
	out := model.FarmerRecommendations{
		FarmerID:            f.ID,
		FarmName:            f.FarmName,
		CropRecommendations: []model.CropRecommendation{},
	}

	profile := soil.Normalize(f)
	if !f.HasSoil() || profile.IsEmpty() {
		return out
	}

	if blend := matching.BestForFarm(f, catalog); blend != nil {
		out.FarmFertilizer = blend.Title
	}
	for _, crop := range f.Crops {
		blend := matching.BestForCrop(crop, profile, catalog)
		if rec := matching.DeriveCropRecommendation(crop, profile, blend); rec != nil {
			out.CropRecommendations = append(out.CropRecommendations, *rec)
		}
	}
	return out
}
