package aggregate

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Header labels of the export table.
const (
	CompanyHeader = "Company Name"
	TotalHeader   = "Total (kg)"
	TotalLabel    = "Total"
	sheetName     = "Fertilizer Requirements"
)

// Row is one line of the export table. Amounts follow Table.Types.
type Row struct {
	Name    string    `json:"name" yaml:"name"`
	Amounts []float64 `json:"amounts" yaml:"amounts"`
	Total   float64   `json:"total" yaml:"total"`
}

// Table is the fertilizer requirement export: one row per company and a
// trailing totals row.
type Table struct {
	Headers []string `json:"headers" yaml:"headers"`
	Types   []string `json:"types" yaml:"types"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	Totals  Row      `json:"totals" yaml:"totals"`
}

// ExportTable lays summaries out as a table. Columns are the alphabetical
// union of blend names across all companies; missing amounts are 0.
func ExportTable(summaries []Summary) Table {
	seen := make(map[string]struct{})
	for _, s := range summaries {
		for name := range s.FertilizerTotals {
			seen[name] = struct{}{}
		}
	}
	types := make([]string, 0, len(seen))
	for name := range seen {
		types = append(types, name)
	}
	sort.Strings(types)

	headers := make([]string, 0, len(types)+2)
	headers = append(headers, CompanyHeader)
	for _, name := range types {
		headers = append(headers, name+" (kg)")
	}
	headers = append(headers, TotalHeader)

	t := Table{
		Headers: headers,
		Types:   types,
		Rows:    make([]Row, 0, len(summaries)),
		Totals:  Row{Name: TotalLabel, Amounts: make([]float64, len(types))},
	}
	for _, s := range summaries {
		row := Row{Name: s.CompanyName, Amounts: make([]float64, len(types))}
		for i, name := range types {
			amount := safe(s.FertilizerTotals[name])
			row.Amounts[i] = amount
			t.Totals.Amounts[i] += amount
		}
		row.Total = safe(s.TotalAmount)
		t.Totals.Total += row.Total
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Records flattens the table into string records: headers, company rows
// and the totals row.
func (t Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+2)
	records = append(records, t.Headers)
	for _, r := range t.Rows {
		records = append(records, r.record())
	}
	return append(records, t.Totals.record())
}

func (r Row) record() []string {
	rec := make([]string, 0, len(r.Amounts)+2)
	rec = append(rec, r.Name)
	for _, a := range r.Amounts {
		rec = append(rec, formatAmount(a))
	}
	return append(rec, formatAmount(r.Total))
}

// WriteCSV writes the table as CSV. Names containing commas or quotes are
// quoted.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return eris.Wrap(err, "aggregate: write csv")
	}
	return nil
}

// WriteXLSX saves the table as a single-sheet workbook. Amounts are stored
// as numbers.
func WriteXLSX(path string, t Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "aggregate: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range t.Headers {
		header.AddCell().SetString(h)
	}
	for _, r := range append(append([]Row{}, t.Rows...), t.Totals) {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Name)
		for _, a := range r.Amounts {
			row.AddCell().SetFloat(a)
		}
		row.AddCell().SetFloat(r.Total)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "aggregate: save %s", path)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(safe(v), 'f', -1, 64)
}
