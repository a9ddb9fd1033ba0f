package summary

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"doseview/domain/selection"
	"doseview/domain/table"
)

// ColumnStats are describe()-style statistics for one numeric column,
// computed over non-missing values only. Std needs at least two values
// and is absent below that.
type ColumnStats struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Std    *float64 `json:"std,omitempty"`
	Min    float64  `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// GroupCount is the number of rows for one categorical group value
type GroupCount struct {
	Value string `json:"value"`
	Rows  int    `json:"rows"`
}

// Summary describes a filtered table for the dashboard's summary panel
type Summary struct {
	RowCount    int           `json:"row_count"`
	ColumnCount int           `json:"column_count"`
	Numeric     []ColumnStats `json:"numeric"`

	// Screening extras, empty for generic tables
	CompoundCounts     []GroupCount `json:"compound_counts,omitempty"`
	ConcentrationRange string       `json:"concentration_range,omitempty"`
}

// Summarize computes row/column counts and per-numeric-column statistics
func Summarize(t *table.Table) (*Summary, error) {
	s := &Summary{
		RowCount:    t.Len(),
		ColumnCount: t.Schema().Len(),
	}

	for _, column := range t.Schema().NumericColumns() {
		values, err := t.Floats(column)
		if err != nil {
			return nil, err
		}
		cs, err := describe(column, values)
		if err != nil {
			return nil, err
		}
		s.Numeric = append(s.Numeric, cs)
	}
	return s, nil
}

// SummarizeScreening adds per-compound row counts and the concentration
// range to the generic summary. The range keeps the display convention
// of three decimals for the minimum and one for the maximum.
func SummarizeScreening(t *table.Table) (*Summary, error) {
	s, err := Summarize(t)
	if err != nil {
		return nil, err
	}

	compounds, err := t.DistinctStrings(selection.ColCompound)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(compounds))
	for i := 0; i < t.Len(); i++ {
		if c, ok := t.String(i, selection.ColCompound); ok && c != "" {
			counts[c]++
		}
	}
	for _, compound := range compounds {
		s.CompoundCounts = append(s.CompoundCounts, GroupCount{Value: compound, Rows: counts[compound]})
	}

	concentrations, err := t.Floats(selection.ColConcentration)
	if err != nil {
		return nil, err
	}
	if len(concentrations) > 0 {
		min, _ := stats.Min(concentrations)
		max, _ := stats.Max(concentrations)
		s.ConcentrationRange = fmt.Sprintf("%.3f – %.1f", min, max)
	}

	return s, nil
}

// describe computes the standard descriptive statistics for one column
func describe(column string, values []float64) (ColumnStats, error) {
	cs := ColumnStats{Column: column, Count: len(values)}
	if len(values) == 0 {
		return cs, nil
	}

	var err error
	if cs.Mean, err = stats.Mean(values); err != nil {
		return cs, err
	}
	if len(values) > 1 {
		std, err := stats.StandardDeviationSample(values)
		if err != nil {
			return cs, err
		}
		cs.Std = &std
	}
	if cs.Min, err = stats.Min(values); err != nil {
		return cs, err
	}
	if cs.Max, err = stats.Max(values); err != nil {
		return cs, err
	}
	if cs.Q25, err = stats.Percentile(values, 25); err != nil {
		return cs, err
	}
	if cs.Median, err = stats.Median(values); err != nil {
		return cs, err
	}
	if cs.Q75, err = stats.Percentile(values, 75); err != nil {
		return cs, err
	}
	return cs, nil
}
