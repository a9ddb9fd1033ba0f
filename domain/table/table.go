package table

import (
	"math"
	"sort"
	"time"

	"doseview/domain/core"
)

// Row is one record's cells in schema column order. Cells are string,
// float64 or time.Time depending on the column kind; nil marks a missing
// value.
type Row []any

// Table is an ordered sequence of rows sharing one schema. Tables are
// immutable after construction: filtering produces a new Table over the
// same backing rows, the original is untouched.
type Table struct {
	schema Schema
	rows   []Row
}

// New creates a table from a schema and rows, validating row width
func New(schema Schema, rows []Row) (*Table, error) {
	for _, row := range rows {
		if len(row) != schema.Len() {
			return nil, core.ErrSchemaMismatch
		}
	}
	return &Table{schema: schema, rows: rows}, nil
}

// Schema returns the table's schema
func (t *Table) Schema() Schema {
	return t.schema
}

// Len returns the row count
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the cell at (row, column name)
func (t *Table) Value(i int, column string) (any, error) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return nil, core.NewColumnNotFoundError(column)
	}
	return t.rows[i][idx], nil
}

// Float returns the numeric cell at (row, column), reporting whether a
// non-missing value was present
func (t *Table) Float(i int, column string) (float64, bool) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return 0, false
	}
	v, ok := t.rows[i][idx].(float64)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// String returns the categorical cell at (row, column)
func (t *Table) String(i int, column string) (string, bool) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return "", false
	}
	s, ok := t.rows[i][idx].(string)
	return s, ok
}

// Record returns the i-th row as a column→value mapping for display
func (t *Table) Record(i int) map[string]any {
	record := make(map[string]any, t.schema.Len())
	for j, col := range t.schema.columns {
		record[col.Name] = t.rows[i][j]
	}
	return record
}

// Strings returns the values of a categorical column. Missing cells come
// back as empty strings.
func (t *Table) Strings(column string) ([]string, error) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return nil, core.NewColumnNotFoundError(column)
	}
	if t.schema.columns[idx].Kind != KindCategorical {
		return nil, core.ErrTypeMismatch
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		if s, ok := row[idx].(string); ok {
			out[i] = s
		}
	}
	return out, nil
}

// Floats returns the non-missing values of a numeric column, in row order
func (t *Table) Floats(column string) ([]float64, error) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return nil, core.NewColumnNotFoundError(column)
	}
	if t.schema.columns[idx].Kind != KindNumeric {
		return nil, core.ErrTypeMismatch
	}
	out := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		if v, ok := row[idx].(float64); ok && !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Times returns the values of a datetime column. Missing cells come back
// as zero times.
func (t *Table) Times(column string) ([]time.Time, error) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return nil, core.NewColumnNotFoundError(column)
	}
	if t.schema.columns[idx].Kind != KindDatetime {
		return nil, core.ErrTypeMismatch
	}
	out := make([]time.Time, len(t.rows))
	for i, row := range t.rows {
		if ts, ok := row[idx].(time.Time); ok {
			out[i] = ts
		}
	}
	return out, nil
}

// DistinctStrings returns the sorted distinct values of a categorical
// column, skipping missing cells
func (t *Table) DistinctStrings(column string) ([]string, error) {
	values, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	var distinct []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)
	return distinct, nil
}

// DistinctFloats returns the sorted distinct values of a numeric column
func (t *Table) DistinctFloats(column string) ([]float64, error) {
	values, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[float64]bool, len(values))
	var distinct []float64
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		distinct = append(distinct, v)
	}
	sort.Float64s(distinct)
	return distinct, nil
}

// Filter returns a new table holding the rows for which keep is true,
// preserving row order. The receiver is not modified.
func (t *Table) Filter(keep func(i int) bool) *Table {
	var rows []Row
	for i := range t.rows {
		if keep(i) {
			rows = append(rows, t.rows[i])
		}
	}
	return &Table{schema: t.schema, rows: rows}
}

// SortedBy returns a new table stably sorted ascending by the given
// column. Missing cells sort first.
func (t *Table) SortedBy(column string) (*Table, error) {
	idx := t.schema.IndexOf(column)
	if idx < 0 {
		return nil, core.NewColumnNotFoundError(column)
	}
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	sort.SliceStable(rows, func(a, b int) bool {
		return lessCell(rows[a][idx], rows[b][idx])
	})
	return &Table{schema: t.schema, rows: rows}, nil
}

// lessCell orders two cells of the same column. nil sorts before
// everything else.
func lessCell(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av < bv
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Before(bv)
	}
	return false
}
