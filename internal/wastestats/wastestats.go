// Package wastestats derives waste pool and supply status figures from the
// food-service dataset.
package wastestats

import (
	"math"
	"sort"
	"strings"

	"github.com/circufert/circufert-cli/internal/model"
)

// AllTypes selects every establishment type.
const AllTypes = "all"

const (
	topSourceCount     = 5
	excellentNitrogen  = 4.0 // nitrogen percentage scored as 100
	processingBuffer   = 1.5
	productionYieldPct = 65
)

// Metric statuses.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusPoor    = "poor"
)

// Delivery schedules.
const (
	Weekly   = "Weekly"
	BiWeekly = "Bi-weekly"
	Monthly  = "Monthly"
)

// Period addresses one month in the year -> quarter -> month index.
type Period struct {
	Year    string `json:"year" yaml:"year" mapstructure:"year"`
	Quarter string `json:"quarter" yaml:"quarter" mapstructure:"quarter"`
	Month   string `json:"month" yaml:"month" mapstructure:"month"`
}

// DefaultPeriod is the observed month used when none is configured.
var DefaultPeriod = Period{Year: "2024", Quarter: "Q1", Month: "March"}

// DefaultProjection is the projected month used when none is configured.
var DefaultProjection = Period{Year: "2024", Quarter: "Q2", Month: "April"}

func (p Period) String() string {
	return p.Year + " " + p.Quarter + " " + p.Month
}

// IsZero reports whether no field is set.
func (p Period) IsZero() bool {
	return p == Period{}
}

// Source is a waste location tagged with its establishment.
type Source struct {
	Location          model.WasteLocation
	EstablishmentID   string
	EstablishmentName string
	EstablishmentType string
}

// Sources flattens all establishment locations, keeping dataset order.
func Sources(data *model.FoodServiceData) []Source {
	if data == nil {
		return nil
	}
	var out []Source
	for _, est := range data.FoodServiceEstablishments {
		for _, loc := range est.Locations {
			out = append(out, Source{
				Location:          loc,
				EstablishmentID:   est.ID,
				EstablishmentName: est.Name,
				EstablishmentType: est.Type,
			})
		}
	}
	return out
}

// Types returns the distinct establishment types, sorted.
func Types(data *model.FoodServiceData) []string {
	seen := make(map[string]struct{})
	for _, s := range Sources(data) {
		seen[s.EstablishmentType] = struct{}{}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// matchesType reports whether the source belongs to the type filter. An
// empty filter or AllTypes matches everything. Types match exactly, the same
// way nutrient.Table keys them.
func matchesType(s Source, establishmentType string) bool {
	if establishmentType == "" || establishmentType == AllTypes {
		return true
	}
	return s.EstablishmentType == establishmentType
}

// PoolKg is the waste received in the period from sources of the given
// type.
func PoolKg(data *model.FoodServiceData, period Period, establishmentType string) float64 {
	var total float64
	for _, s := range Sources(data) {
		if !matchesType(s, establishmentType) {
			continue
		}
		if rec, ok := s.Location.Historical(period.Year, period.Quarter, period.Month); ok {
			total += safe(rec.FoodWasteKg)
		}
	}
	return total
}

// QualityMetric is one graded waste quality figure.
type QualityMetric struct {
	Name        string  `json:"name" yaml:"name"`
	Value       float64 `json:"value" yaml:"value"`
	Unit        string  `json:"unit" yaml:"unit"`
	Status      string  `json:"status" yaml:"status"`
	Description string  `json:"description" yaml:"description"`
}

// SourceStatus is a top waste producer of the period.
type SourceStatus struct {
	Name              string  `json:"name" yaml:"name"`
	Location          string  `json:"location" yaml:"location"`
	EstablishmentType string  `json:"establishment_type" yaml:"establishment_type"`
	AmountKg          float64 `json:"amount_kg" yaml:"amount_kg"`
	ScheduledDelivery string  `json:"scheduled_delivery" yaml:"scheduled_delivery"`
	QualityScore      int     `json:"quality_score" yaml:"quality_score"`
}

// Status summarizes waste supply for a period.
type Status struct {
	Period                    Period          `json:"period" yaml:"period"`
	Projection                Period          `json:"projection" yaml:"projection"`
	TotalWasteExpectedKg      float64         `json:"total_waste_expected_kg" yaml:"total_waste_expected_kg"`
	TotalWasteReceivedKg      float64         `json:"total_waste_received_kg" yaml:"total_waste_received_kg"`
	OverallQualityScore       int             `json:"overall_quality_score" yaml:"overall_quality_score"`
	QualityMetrics            []QualityMetric `json:"quality_metrics" yaml:"quality_metrics"`
	WasteSources              []SourceStatus  `json:"waste_sources" yaml:"waste_sources"`
	MonthlyProcessingCapacity float64         `json:"monthly_processing_capacity_kg" yaml:"monthly_processing_capacity_kg"`
	ProductionYieldPercentage int             `json:"production_yield_percentage" yaml:"production_yield_percentage"`
	TotalMealsPerDay          int             `json:"total_meals_per_day" yaml:"total_meals_per_day"`
	SourceCount               int             `json:"source_count" yaml:"source_count"`
}

// ComputeStatus computes the supply status for period, with expected waste taken
// from the projection month. Only locations reporting the period count
// towards received, expected and nitrogen figures.
func ComputeStatus(data *model.FoodServiceData, period, projection Period) Status {
	sources := Sources(data)
	st := Status{
		Period:                    period,
		Projection:                projection,
		ProductionYieldPercentage: productionYieldPct,
		SourceCount:               len(sources),
		QualityMetrics:            []QualityMetric{},
		WasteSources:              []SourceStatus{},
	}

	type reporting struct {
		src      Source
		wasteKg  float64
		nitrogen float64
	}
	var current []reporting
	var wasteFactor float64

	for _, s := range sources {
		st.TotalMealsPerDay += s.Location.MealsPerDay
		wasteFactor += safe(s.Location.RunningAverageWasteFactor)

		rec, ok := s.Location.Historical(period.Year, period.Quarter, period.Month)
		if !ok {
			continue
		}
		r := reporting{src: s, wasteKg: safe(rec.FoodWasteKg)}
		if rec.NitrogenLevelPercentage != nil {
			r.nitrogen = safe(*rec.NitrogenLevelPercentage)
		}
		current = append(current, r)

		st.TotalWasteReceivedKg += r.wasteKg
		if proj, ok := s.Location.Projected(projection.Year, projection.Quarter, projection.Month); ok {
			st.TotalWasteExpectedKg += safe(proj.EstimatedWasteKg)
		}
	}

	var avgNitrogen, avgWasteFactor float64
	if len(current) > 0 {
		for _, r := range current {
			avgNitrogen += r.nitrogen
		}
		avgNitrogen /= float64(len(current))
	}
	if len(sources) > 0 {
		avgWasteFactor = wasteFactor / float64(len(sources))
	}

	st.OverallQualityScore = QualityScore(avgNitrogen)
	st.QualityMetrics = append(st.QualityMetrics,
		QualityMetric{
			Name:        "Nitrogen Content",
			Value:       avgNitrogen,
			Unit:        "%",
			Status:      NitrogenStatus(avgNitrogen),
			Description: "Nitrogen available for composting",
		},
		QualityMetric{
			Name:        "Average Waste Factor",
			Value:       avgWasteFactor * 100,
			Unit:        "%",
			Status:      WasteFactorStatus(avgWasteFactor),
			Description: "Proportion of food wasted (lower is better)",
		},
	)

	sort.SliceStable(current, func(i, j int) bool {
		return current[i].wasteKg > current[j].wasteKg
	})
	for i, r := range current {
		if i == topSourceCount {
			break
		}
		st.WasteSources = append(st.WasteSources, SourceStatus{
			Name:              r.src.EstablishmentName,
			Location:          r.src.Location.Name,
			EstablishmentType: r.src.EstablishmentType,
			AmountKg:          r.wasteKg,
			ScheduledDelivery: DeliverySchedule(r.src.EstablishmentType),
			QualityScore:      QualityScore(r.nitrogen),
		})
	}

	st.MonthlyProcessingCapacity = math.Round(st.TotalWasteExpectedKg * processingBuffer)
	return st
}

// QualityScore maps a nitrogen percentage onto 0-100, with 4% scoring 100.
func QualityScore(nitrogenPct float64) int {
	score := math.Round(safe(nitrogenPct) / excellentNitrogen * 100)
	return int(math.Min(score, 100))
}

// NitrogenStatus grades an average nitrogen percentage.
func NitrogenStatus(pct float64) string {
	switch {
	case pct > 3:
		return StatusGood
	case pct > 2.5:
		return StatusWarning
	default:
		return StatusPoor
	}
}

// WasteFactorStatus grades the share of food wasted; lower is better.
func WasteFactorStatus(factor float64) string {
	switch {
	case factor < 0.005:
		return StatusGood
	case factor < 0.01:
		return StatusWarning
	default:
		return StatusPoor
	}
}

// DeliverySchedule picks the pickup rhythm for an establishment type.
func DeliverySchedule(establishmentType string) string {
	switch {
	case strings.Contains(establishmentType, "Hospital"), strings.Contains(establishmentType, "University"):
		return BiWeekly
	case strings.Contains(establishmentType, "Event"):
		return Monthly
	default:
		return Weekly
	}
}

func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
