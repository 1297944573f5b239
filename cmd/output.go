package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// printer groups thousands in terminal output.
var printer = message.NewPrinter(language.English)

func formatKg(v float64) string {
	return printer.Sprintf("%.1f kg", v)
}

func formatEUR(v float64) string {
	return printer.Sprintf("EUR %.2f", v)
}

// writeStructured encodes v as json or yaml.
func writeStructured(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "encode json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return eris.Wrap(enc.Close(), "encode yaml")
	default:
		return eris.Errorf("unsupported output format %q", format)
	}
}
