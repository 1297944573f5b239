package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/circufert/circufert-cli/internal/aggregate"
	"github.com/circufert/circufert-cli/internal/pipeline"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export per-company fertilizer requirements as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("format") {
			cfg.Export.Format = exportFormat
		}
		if flags.Changed("out") {
			cfg.Export.Path = exportOut
		}

		env, err := initEnv(cmd.Context(), cfg, "run")
		if err != nil {
			return err
		}

		recs := pipeline.Recommend(env.Snapshot.Agricultural.FertilizerCompanies, env.Snapshot.Catalog.Fertilizers)
		table := aggregate.ExportTable(aggregate.SummarizeAll(recs))

		if err := writeExport(table, cfg.Export.Format, cfg.Export.Path); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("format", cfg.Export.Format),
			zap.String("path", cfg.Export.Path),
			zap.Int("companies", len(table.Rows)),
		)
		return nil
	},
}

// writeExport writes table to path. A CSV path of "-" writes to stdout.
func writeExport(table aggregate.Table, format, path string) error {
	switch format {
	case "xlsx":
		return aggregate.WriteXLSX(path, table)
	case "csv":
		if path == "-" {
			return aggregate.WriteCSV(os.Stdout, table)
		}
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create %s", path)
		}
		defer f.Close() //nolint:errcheck

		return aggregate.WriteCSV(f, table)
	default:
		return eris.Errorf("unsupported export format %q", format)
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx (default from config)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default from config)")
	rootCmd.AddCommand(exportCmd)
}
