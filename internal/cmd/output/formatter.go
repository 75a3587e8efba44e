// Package output renders command results: aligned tables for a terminal,
// json or yaml for scripts.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/errors"
)

// Format names an output rendering selected with --format.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatWide  Format = "wide" // table with contact and address columns
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// DetectFormat returns the requested format. Without one it picks table on
// a terminal and json when stdout is piped.
func DetectFormat(requested string) Format {
	if requested != "" {
		return Format(strings.ToLower(requested))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a --format value. Empty means auto-detect.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatWide, FormatJSON, FormatYAML, "":
		return f, nil
	}
	return "", errors.NewValidationError("format", s, "must be one of: table, wide, json, yaml")
}

// IsStructured reports whether the format is meant for machines rather
// than a terminal.
func IsStructured(format Format) bool {
	return format == FormatJSON || format == FormatYAML
}

// Write renders a command result. Structured formats encode raw, the
// registry value itself; table formats render the prepared rows.
func Write(w io.Writer, raw any, rows table.Data, globalFlags *globals.Flags) error {
	switch DetectFormat(globalFlags.Output) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(raw, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return errors.WrapParse("yaml", "output", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return writeTable(w, rows)
	}
}

func writeTable(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			align[i] = twAlign(a)
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		t.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := t.Append(cells(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func twAlign(a table.Align) tw.Align {
	switch a {
	case table.AlignLeft:
		return tw.AlignLeft
	case table.AlignCenter:
		return tw.AlignCenter
	case table.AlignRight:
		return tw.AlignRight
	}
	return tw.Skip
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}
