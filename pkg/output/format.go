// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/calculator"
	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/format"
)

// Write renders results in the named output format.
func Write(w io.Writer, format string, results []calculator.Result[any]) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []calculator.Result[any]) error {
	for i, result := range results {
		rows, err := flattenResult(result)
		if err != nil {
			return err
		}

		width := len("Field")
		for _, row := range rows {
			if len(row.field) > width {
				width = len(row.field)
			}
		}

		fmt.Fprintf(w, "--- Results for %s ---\n", result.CalculationType)
		if result.GuidelineReference != "" {
			fmt.Fprintf(w, "Guideline: %s\n", result.GuidelineReference)
		}
		fmt.Fprintf(w, "%-*s | Value\n", width, "Field")
		fmt.Fprintf(w, "%s | _____\n", strings.Repeat("_", width))
		for _, row := range rows {
			fmt.Fprintf(w, "%-*s | %s\n", width, row.field, displayValue(row.value))
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "! %s\n", warning)
		}
		if len(results) > 1 && i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

// CsvFormat outputs one row per field in comma-separated value format.
// Warnings are emitted as rows in the "warning" section.
func CsvFormat(w io.Writer, results []calculator.Result[any]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"calculationType", "section", "field", "value"}); err != nil {
		return err
	}
	for _, result := range results {
		rows, err := flattenResult(result)
		if err != nil {
			return err
		}
		for _, row := range rows {
			section, name := splitSection(row.field)
			if err := cw.Write([]string{result.CalculationType, section, name, row.value}); err != nil {
				return err
			}
		}
		for i, warning := range result.Warnings {
			if err := cw.Write([]string{result.CalculationType, "warning", strconv.Itoa(i + 1), warning}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the result envelopes as indented JSON.
func JSONFormat(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type row struct {
	field string
	value string
}

// flattenResult lists the result value and details as dotted field paths,
// result fields first, each section sorted by name.
func flattenResult(result calculator.Result[any]) ([]row, error) {
	var rows []row
	for _, section := range []struct {
		name  string
		value any
	}{
		{"result", result.Result},
		{"details", result.Details},
	} {
		if section.name == "details" && len(result.Details) == 0 {
			continue
		}
		generic, err := toGeneric(section.value)
		if err != nil {
			return nil, fmt.Errorf("failed to flatten %s of %s: %w", section.name, result.CalculationType, err)
		}
		sectionRows := flatten(section.name, generic)
		sort.Slice(sectionRows, func(i, j int) bool { return sectionRows[i].field < sectionRows[j].field })
		rows = append(rows, sectionRows...)
	}
	return rows, nil
}

// toGeneric round-trips v through JSON so struct, map and decimal values all
// come back as maps, slices and json.Number.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, v any) []row {
	switch value := v.(type) {
	case map[string]any:
		var rows []row
		for k, inner := range value {
			rows = append(rows, flatten(prefix+"."+k, inner)...)
		}
		return rows
	case []any:
		var rows []row
		for i, inner := range value {
			rows = append(rows, flatten(fmt.Sprintf("%s.%d", prefix, i), inner)...)
		}
		return rows
	case nil:
		return []row{{field: prefix, value: ""}}
	default:
		return []row{{field: prefix, value: fmt.Sprint(value)}}
	}
}

func splitSection(field string) (string, string) {
	section, name, found := strings.Cut(field, ".")
	if !found {
		return section, ""
	}
	return section, name
}

// displayValue groups the integer digits of numeric values, keeping their
// precision, and passes anything else through.
func displayValue(value string) string {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	places := int32(0)
	if exp := d.Exponent(); exp < 0 {
		places = -exp
	}
	return format.Grouped(d, places)
}
