package tabular

import (
	"log"
	"strconv"
	"strings"
	"time"

	"doseview/domain/table"
)

// coercionThreshold is the share of non-empty cells that must parse as a
// type before the whole column is treated as that type
const coercionThreshold = 0.8

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02.01.2006",
}

// InferSchema determines column kinds from the raw string cells. A
// column is numeric or datetime only when at least 80% of its non-empty
// cells parse; everything else stays categorical.
func InferSchema(data *RawData) (table.Schema, error) {
	columns := make([]table.Column, len(data.Headers))
	for j, header := range data.Headers {
		numeric, datetime, nonEmpty := 0, 0, 0
		for _, row := range data.Rows {
			cell := row[j]
			if cell == "" {
				continue
			}
			nonEmpty++
			if _, err := strconv.ParseFloat(normalizeNumber(cell), 64); err == nil {
				numeric++
				continue
			}
			if _, ok := parseDate(cell); ok {
				datetime++
			}
		}

		kind := table.KindCategorical
		if nonEmpty > 0 {
			switch {
			case float64(numeric)/float64(nonEmpty) >= coercionThreshold:
				kind = table.KindNumeric
			case float64(datetime)/float64(nonEmpty) >= coercionThreshold:
				kind = table.KindDatetime
			}
		}
		columns[j] = table.Column{Name: header, Kind: kind}
	}
	return table.NewSchema(columns...)
}

// ToTable coerces raw string cells into a typed table. Cells that fail
// to parse under their column's kind become missing values; the table
// never carries strings inside numeric columns.
func ToTable(data *RawData) (*table.Table, error) {
	schema, err := InferSchema(data)
	if err != nil {
		return nil, err
	}

	kinds := schema.Columns()
	rows := make([]table.Row, 0, len(data.Rows))
	dropped := 0
	for _, raw := range data.Rows {
		row := make(table.Row, len(kinds))
		for j, col := range kinds {
			cell := raw[j]
			if cell == "" {
				row[j] = nil
				continue
			}
			switch col.Kind {
			case table.KindNumeric:
				if v, err := strconv.ParseFloat(normalizeNumber(cell), 64); err == nil {
					row[j] = v
				} else {
					dropped++
				}
			case table.KindDatetime:
				if ts, ok := parseDate(cell); ok {
					row[j] = ts
				} else {
					dropped++
				}
			default:
				row[j] = cell
			}
		}
		rows = append(rows, row)
	}
	if dropped > 0 {
		log.Printf("[DataReader] %d cells failed coercion and were treated as missing", dropped)
	}

	return table.New(schema, rows)
}

// normalizeNumber strips thousands separators so "1,234.5" parses
func normalizeNumber(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// parseDate tries the known date layouts in order
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
