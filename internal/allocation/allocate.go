// Package allocation splits a finite food-waste pool across fertilizer
// companies. Companies are ranked by price weighted with how well the waste
// covers their customers' nutrient needs, then filled greedily up to their
// capacity ceiling.
package allocation

import (
	"math"
	"sort"

	"github.com/circufert/circufert-cli/internal/model"
	"github.com/circufert/circufert-cli/internal/nutrient"
)

const (
	// FlatNeedPerHectare estimates fertilizer need for companies whose
	// customers list no crops.
	FlatNeedPerHectare = 250.0

	// DefaultMatchScore is used for companies without crop detail.
	DefaultMatchScore = 1.0

	// CapacityPerHectare estimates monthly processing capacity for companies
	// that report none.
	CapacityPerHectare = 50.0

	matchBaseline    = 0.5
	nitrogenWeight   = 0.5
	phosphorusWeight = 0.3
	carbonWeight     = 0.2
)

// Request is one allocation run. A nil Rates uses nutrient.DefaultTable.
type Request struct {
	Companies           []model.Company
	TotalWasteKg        float64
	EstablishmentType   string
	ForceFullAllocation bool
	Rates               nutrient.Table
}

// CompanyAllocation is the share of the pool assigned to one company.
// CapacityKg is the waste-share ceiling of the greedy pass; ProcessingKg adds
// the monthly processing capacity and bounds the force-full pass.
type CompanyAllocation struct {
	CompanyID        string          `json:"company_id" yaml:"company_id"`
	CompanyName      string          `json:"company_name" yaml:"company_name"`
	Rank             int             `json:"rank" yaml:"rank"`
	AllocatedKg      float64         `json:"allocated_kg" yaml:"allocated_kg"`
	CostPerKgEUR     float64         `json:"cost_per_kg_eur" yaml:"cost_per_kg_eur"`
	RevenueEUR       float64         `json:"revenue_eur" yaml:"revenue_eur"`
	Nutrients        nutrient.Totals `json:"nutrients" yaml:"nutrients"`
	MatchScore       float64         `json:"match_score" yaml:"match_score"`
	EconomicValue    float64         `json:"economic_value" yaml:"economic_value"`
	FertilizerNeedKg float64         `json:"fertilizer_need_kg" yaml:"fertilizer_need_kg"`
	CapacityKg       float64         `json:"capacity_kg" yaml:"capacity_kg"`
	ProcessingKg     float64         `json:"processing_kg" yaml:"processing_kg"`
	Percentage       int             `json:"percentage" yaml:"percentage"`
}

// Headroom is the processing capacity left unused after allocation.
func (a CompanyAllocation) Headroom() float64 {
	return math.Max(0, a.ProcessingKg-a.AllocatedKg)
}

// Result holds the allocations in rank order. Percentages maps company ID to
// its share of the pool; companies sharing an ID are combined, otherwise it
// equals CompanyAllocation.Percentage.
type Result struct {
	Allocations   []CompanyAllocation `json:"allocations" yaml:"allocations"`
	Percentages   map[string]int      `json:"percentages" yaml:"percentages"`
	PoolKg        float64             `json:"pool_kg" yaml:"pool_kg"`
	AllocatedKg   float64             `json:"allocated_kg" yaml:"allocated_kg"`
	UnallocatedKg float64             `json:"unallocated_kg" yaml:"unallocated_kg"`
}

// Allocate runs the allocation. Input companies are never modified. An
// invalid or empty pool, or companies without capacity, yield zero
// allocations and leave the pool unallocated.
func Allocate(req Request) *Result {
	rates := req.Rates
	if rates == nil {
		rates = nutrient.DefaultTable()
	}
	content := rates.Lookup(req.EstablishmentType)
	pool := sanitize(req.TotalWasteKg)
	available := content.ForMass(pool)

	allocs := make([]CompanyAllocation, len(req.Companies))
	for i := range req.Companies {
		c := &req.Companies[i]
		need := FertilizerNeed(c)
		score := MatchScore(c, available)
		ceiling := sanitize(need * sanitize(c.MaxFoodWastePercentage) / 100)
		cost := sanitize(c.CostPerKgEUR)
		allocs[i] = CompanyAllocation{
			CompanyID:        c.ID,
			CompanyName:      c.Name,
			CostPerKgEUR:     cost,
			FertilizerNeedKg: need,
			CapacityKg:       ceiling,
			ProcessingKg:     ceiling + MonthlyCapacity(c),
			MatchScore:       score,
			EconomicValue:    cost * score,
		}
	}

	sort.SliceStable(allocs, func(i, j int) bool {
		return allocs[i].EconomicValue > allocs[j].EconomicValue
	})

	remaining := pool
	for i := range allocs {
		allocs[i].Rank = i + 1
		amount := math.Min(remaining, allocs[i].CapacityKg)
		allocs[i].AllocatedKg = amount
		remaining -= amount
	}

	if req.ForceFullAllocation && remaining > 0 {
		remaining = distributeRemainder(allocs, remaining)
	}

	res := &Result{
		Allocations: allocs,
		Percentages: make(map[string]int, len(allocs)),
		PoolKg:      pool,
	}
	byID := make(map[string]float64, len(allocs))
	for i := range allocs {
		a := &allocs[i]
		a.RevenueEUR = a.AllocatedKg * a.CostPerKgEUR
		a.Nutrients = content.ForMass(a.AllocatedKg)
		a.Percentage = Percentage(a.AllocatedKg, pool)
		byID[a.CompanyID] += a.AllocatedKg
		res.AllocatedKg += a.AllocatedKg
	}
	for id, kg := range byID {
		res.Percentages[id] = Percentage(kg, pool)
	}
	res.UnallocatedKg = math.Max(0, remaining)
	return res
}

// distributeRemainder spreads the remaining pool over unused processing
// capacity in proportion to each company's headroom. The greedy pass leaves
// pool behind only once every ceiling is reached, so this pass lets each
// company take up to its monthly processing capacity on top of its
// waste-share ceiling. No company exceeds ProcessingKg. It returns what is
// left afterwards.
func distributeRemainder(allocs []CompanyAllocation, remaining float64) float64 {
	var headroom float64
	for i := range allocs {
		headroom += allocs[i].Headroom()
	}
	if headroom <= 0 {
		return remaining
	}

	if remaining >= headroom {
		for i := range allocs {
			allocs[i].AllocatedKg = math.Max(allocs[i].AllocatedKg, allocs[i].ProcessingKg)
		}
		return remaining - headroom
	}

	var given float64
	for i := range allocs {
		h := allocs[i].Headroom()
		if h <= 0 {
			continue
		}
		extra := math.Min(h, remaining*h/headroom)
		allocs[i].AllocatedKg += extra
		given += extra
	}
	return math.Max(0, remaining-given)
}

// MonthlyCapacity is the company's monthly processing capacity in kg: the
// reported monthly_capacity_kg, or CapacityPerHectare for every hectare of
// customer farmland when none is reported.
func MonthlyCapacity(c *model.Company) float64 {
	if reported := sanitize(c.MonthlyCapacityKg); reported > 0 {
		return reported
	}
	return sanitize(c.TotalFarmHectares() * CapacityPerHectare)
}

// FertilizerNeed estimates a company's fertilizer need in kg: the summed
// nitrogen need of all listed crops, or a flat per-hectare figure when no
// customer lists crops.
func FertilizerNeed(c *model.Company) float64 {
	if !c.HasCropDetail() {
		return sanitize(c.TotalFarmHectares() * FlatNeedPerHectare)
	}

	var need float64
	for _, f := range c.Customers {
		for _, crop := range f.Crops {
			need += sanitize(crop.SoilRequirements.NitrogenNeedsKgPerHectare) * sanitize(crop.FieldSizeHectares)
		}
	}
	return need
}

// MatchScore rates how well the nutrients available in the pool cover the
// company's crop needs: weighted coverage of nitrogen, phosphorus and carbon
// plus a 0.5 baseline. The result is not clamped and may exceed 1.
// Companies without crop detail score DefaultMatchScore.
func MatchScore(c *model.Company, available nutrient.Totals) float64 {
	if !c.HasCropDetail() {
		return DefaultMatchScore
	}

	var n, p, carbon float64
	for _, f := range c.Customers {
		for _, crop := range f.Crops {
			field := sanitize(crop.FieldSizeHectares)
			req := crop.SoilRequirements
			n += sanitize(req.NitrogenNeedsKgPerHectare) * field
			p += sanitize(req.PhosphorusNeedsKgPerHectare) * field
			carbon += sanitize(req.CarbonNeedsKgPerHectare) * field
		}
	}

	return nitrogenWeight*coverage(available.NitrogenKg, n) +
		phosphorusWeight*coverage(available.PhosphorusKg, p) +
		carbonWeight*coverage(available.CarbonKg, carbon) +
		matchBaseline
}

// Percentage returns round(allocated / pool * 100), or 0 for an empty pool.
func Percentage(allocated, pool float64) int {
	if !(pool > 0) {
		return 0
	}
	return int(math.Round(sanitize(allocated) / pool * 100))
}

// FarmAreaShares is the baseline split by customer farm area: each company
// gets round(own hectares / all hectares * 100). Zero total area gives 0 for
// every company.
func FarmAreaShares(companies []model.Company) map[string]int {
	shares := make(map[string]int, len(companies))

	var total float64
	for i := range companies {
		total += sanitize(companies[i].TotalFarmHectares())
	}
	for i := range companies {
		shares[companies[i].ID] = Percentage(sanitize(companies[i].TotalFarmHectares()), total)
	}
	return shares
}

// coverage is min(1, available/required), 0 when nothing is required.
func coverage(available, required float64) float64 {
	if required <= 0 {
		return 0
	}
	return math.Min(1, sanitize(available)/required)
}

// sanitize maps NaN, infinities and negatives to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
