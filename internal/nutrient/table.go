// Package nutrient holds the per-kg nutrient yield of food waste by
// establishment type.
package nutrient

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultType is the fallback key every table must contain.
const DefaultType = "default"

// Content is the average nutrient mass in kg per kg of food waste.
type Content struct {
	NitrogenKg   float64 `yaml:"nitrogen_kg" json:"nitrogen_kg"`
	CarbonKg     float64 `yaml:"carbon_kg" json:"carbon_kg"`
	PhosphorusKg float64 `yaml:"phosphorus_kg" json:"phosphorus_kg"`
	LimeKg       float64 `yaml:"lime_kg" json:"lime_kg"`
}

// Totals is the nutrient mass contained in an amount of waste, in kg.
type Totals struct {
	NitrogenKg   float64 `yaml:"nitrogen_kg" json:"nitrogen_kg"`
	PhosphorusKg float64 `yaml:"phosphorus_kg" json:"phosphorus_kg"`
	CarbonKg     float64 `yaml:"carbon_kg" json:"carbon_kg"`
	LimeKg       float64 `yaml:"lime_kg" json:"lime_kg"`
}

// ForMass returns the nutrients contained in kg of waste.
func (c Content) ForMass(kg float64) Totals {
	return Totals{
		NitrogenKg:   kg * c.NitrogenKg,
		PhosphorusKg: kg * c.PhosphorusKg,
		CarbonKg:     kg * c.CarbonKg,
		LimeKg:       kg * c.LimeKg,
	}
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		NitrogenKg:   t.NitrogenKg + o.NitrogenKg,
		PhosphorusKg: t.PhosphorusKg + o.PhosphorusKg,
		CarbonKg:     t.CarbonKg + o.CarbonKg,
		LimeKg:       t.LimeKg + o.LimeKg,
	}
}

// Table maps establishment type to nutrient content.
type Table map[string]Content

// DefaultTable returns the built-in rates.
func DefaultTable() Table {
	return Table{
		"Restaurant": {NitrogenKg: 0.025, CarbonKg: 0.45, PhosphorusKg: 0.003, LimeKg: 0.002},
		"Hospital":   {NitrogenKg: 0.028, CarbonKg: 0.48, PhosphorusKg: 0.0035, LimeKg: 0.0025},
		"School":     {NitrogenKg: 0.022, CarbonKg: 0.42, PhosphorusKg: 0.0028, LimeKg: 0.0018},
		"Hotel":      {NitrogenKg: 0.026, CarbonKg: 0.46, PhosphorusKg: 0.0032, LimeKg: 0.0022},
		DefaultType:  {NitrogenKg: 0.024, CarbonKg: 0.44, PhosphorusKg: 0.003, LimeKg: 0.002},
	}
}

// Lookup returns the content for establishmentType, falling back to the
// default entry for unknown types. A table without a default entry yields
// zero content rather than failing.
func (t Table) Lookup(establishmentType string) Content {
	if c, ok := t[establishmentType]; ok {
		return c
	}
	return t[DefaultType]
}

// Types returns the establishment types in the table, sorted.
func (t Table) Types() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks that the default entry exists and no rate is negative.
func (t Table) Validate() error {
	if _, ok := t[DefaultType]; !ok {
		return eris.New("nutrient: table has no default entry")
	}
	for _, name := range t.Types() {
		c := t[name]
		if c.NitrogenKg < 0 || c.CarbonKg < 0 || c.PhosphorusKg < 0 || c.LimeKg < 0 {
			return eris.Errorf("nutrient: negative rate for %q", name)
		}
	}
	return nil
}

// LoadTable reads a YAML rate file and merges it over the defaults. An empty
// path returns the defaults unchanged.
func LoadTable(path string) (Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "nutrient: read table")
	}

	var overrides Table
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, eris.Wrap(err, "nutrient: parse table")
	}
	for name, c := range overrides {
		table[name] = c
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
