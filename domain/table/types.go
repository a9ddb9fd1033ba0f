package table

import (
	"fmt"
)

// Kind is the semantic type of a column
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindNumeric     Kind = "numeric"
	KindDatetime    Kind = "datetime"
)

// Column describes a single column: its name and semantic kind
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema is the fixed mapping from column name to semantic kind for one
// table. The column set never changes during a table's lifetime.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema creates a schema from an ordered column list
func NewSchema(columns ...Column) (Schema, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return Schema{}, fmt.Errorf("column %d has an empty name", i)
		}
		if _, exists := index[col.Name]; exists {
			return Schema{}, fmt.Errorf("duplicate column name %q", col.Name)
		}
		switch col.Kind {
		case KindCategorical, KindNumeric, KindDatetime:
		default:
			return Schema{}, fmt.Errorf("column %q has unknown kind %q", col.Name, col.Kind)
		}
		index[col.Name] = i
	}
	return Schema{columns: columns, index: index}, nil
}

// MustSchema is NewSchema that panics on error, for fixed literal schemas
func MustSchema(columns ...Column) Schema {
	s, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return s
}

// Columns returns the ordered column list
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// ColumnNames returns the ordered column names
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Len returns the number of columns
func (s Schema) Len() int {
	return len(s.columns)
}

// Has reports whether the schema contains a column
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// IndexOf returns the position of a column, or -1 when absent
func (s Schema) IndexOf(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// KindOf returns the semantic kind of a column
func (s Schema) KindOf(name string) (Kind, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.columns[i].Kind, true
}

// NamesOfKind returns the ordered names of all columns with the given kind
func (s Schema) NamesOfKind(kind Kind) []string {
	var names []string
	for _, col := range s.columns {
		if col.Kind == kind {
			names = append(names, col.Name)
		}
	}
	return names
}

// NumericColumns returns the ordered names of numeric columns
func (s Schema) NumericColumns() []string {
	return s.NamesOfKind(KindNumeric)
}

// CategoricalColumns returns the ordered names of categorical columns
func (s Schema) CategoricalColumns() []string {
	return s.NamesOfKind(KindCategorical)
}
