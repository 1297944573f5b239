package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circufert/circufert-cli/internal/aggregate"
)

func exportFixture() aggregate.Table {
	return aggregate.ExportTable([]aggregate.Summary{
		{CompanyID: "A", CompanyName: "Green Cycle", FertilizerTotals: map[string]float64{"Nitro Mix": 160}, TotalAmount: 160},
		{CompanyID: "B", CompanyName: "Soil Works", FertilizerTotals: map[string]float64{}, TotalAmount: 0},
	})
}

func TestWriteExport_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeExport(exportFixture(), "csv", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Company Name,Nitro Mix (kg),Total (kg)", lines[0])
	assert.Equal(t, "Green Cycle,160,160", lines[1])
	assert.Equal(t, "Soil Works,0,0", lines[2])
	assert.Equal(t, "Total,160,160", lines[3])
}

func TestWriteExport_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, writeExport(exportFixture(), "xlsx", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteExport_Errors(t *testing.T) {
	err := writeExport(exportFixture(), "pdf", "out.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")

	err = writeExport(exportFixture(), "csv", filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
