package summary

import (
	"math"
	"testing"

	"doseview/domain/selection"
	"doseview/domain/table"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestSummarizeDescribe(t *testing.T) {
	schema := table.MustSchema(
		table.Column{Name: "label", Kind: table.KindCategorical},
		table.Column{Name: "v", Kind: table.KindNumeric},
	)
	tbl, err := table.New(schema, []table.Row{
		{"a", 1.0},
		{"b", 2.0},
		{"c", 3.0},
		{"d", 4.0},
		{"e", nil},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s, err := Summarize(tbl)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.RowCount != 5 || s.ColumnCount != 2 {
		t.Errorf("counts = %d rows, %d cols; want 5, 2", s.RowCount, s.ColumnCount)
	}
	if len(s.Numeric) != 1 {
		t.Fatalf("len(Numeric) = %d, want 1", len(s.Numeric))
	}

	cs := s.Numeric[0]
	if cs.Column != "v" {
		t.Errorf("Column = %q, want v", cs.Column)
	}
	// Missing cell excluded from every statistic
	if cs.Count != 4 {
		t.Errorf("Count = %d, want 4", cs.Count)
	}
	approx(t, "Mean", cs.Mean, 2.5)
	if cs.Std == nil {
		t.Fatal("Std = nil, want a value for a multi-value column")
	}
	approx(t, "Std", *cs.Std, math.Sqrt(5.0/3.0))
	approx(t, "Min", cs.Min, 1.0)
	approx(t, "Q25", cs.Q25, 1.5)
	approx(t, "Median", cs.Median, 2.5)
	approx(t, "Q75", cs.Q75, 3.5)
	approx(t, "Max", cs.Max, 4.0)
}

func TestSummarizeSingleValueColumnOmitsStd(t *testing.T) {
	schema := table.MustSchema(table.Column{Name: "v", Kind: table.KindNumeric})
	tbl, _ := table.New(schema, []table.Row{{3.5}})

	s, err := Summarize(tbl)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	cs := s.Numeric[0]
	if cs.Count != 1 {
		t.Fatalf("Count = %d, want 1", cs.Count)
	}
	if cs.Std != nil {
		t.Errorf("Std = %v, want nil for a single value", *cs.Std)
	}
	approx(t, "Mean", cs.Mean, 3.5)
}

func TestSummarizeEmptyNumericColumn(t *testing.T) {
	schema := table.MustSchema(table.Column{Name: "v", Kind: table.KindNumeric})
	tbl, _ := table.New(schema, []table.Row{{nil}, {nil}})

	s, err := Summarize(tbl)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.Numeric[0].Count != 0 {
		t.Errorf("Count = %d, want 0", s.Numeric[0].Count)
	}
}

func TestSummarizeScreening(t *testing.T) {
	schema := table.MustSchema(
		table.Column{Name: selection.ColCompound, Kind: table.KindCategorical},
		table.Column{Name: selection.ColConcentration, Kind: table.KindNumeric},
		table.Column{Name: selection.ColAverage, Kind: table.KindNumeric},
	)
	tbl, err := table.New(schema, []table.Row{
		{"CMP-001", 0.001, 1.0},
		{"CMP-001", 10.0, 2.0},
		{"CMP-002", 0.1, 3.0},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s, err := SummarizeScreening(tbl)
	if err != nil {
		t.Fatalf("SummarizeScreening() error = %v", err)
	}

	if len(s.CompoundCounts) != 2 {
		t.Fatalf("CompoundCounts = %+v, want 2 entries", s.CompoundCounts)
	}
	if s.CompoundCounts[0].Value != "CMP-001" || s.CompoundCounts[0].Rows != 2 {
		t.Errorf("first count = %+v, want CMP-001 with 2 rows", s.CompoundCounts[0])
	}
	if s.CompoundCounts[1].Value != "CMP-002" || s.CompoundCounts[1].Rows != 1 {
		t.Errorf("second count = %+v, want CMP-002 with 1 row", s.CompoundCounts[1])
	}

	// Asymmetric display rounding: three decimals on the minimum, one on
	// the maximum
	if s.ConcentrationRange != "0.001 – 10.0" {
		t.Errorf("ConcentrationRange = %q, want \"0.001 – 10.0\"", s.ConcentrationRange)
	}
}

func TestSummarizeScreeningNoConcentrations(t *testing.T) {
	schema := table.MustSchema(
		table.Column{Name: selection.ColCompound, Kind: table.KindCategorical},
		table.Column{Name: selection.ColConcentration, Kind: table.KindNumeric},
	)
	tbl, _ := table.New(schema, []table.Row{{"CMP-001", nil}})

	s, err := SummarizeScreening(tbl)
	if err != nil {
		t.Fatalf("SummarizeScreening() error = %v", err)
	}
	if s.ConcentrationRange != "" {
		t.Errorf("ConcentrationRange = %q, want empty", s.ConcentrationRange)
	}
}
