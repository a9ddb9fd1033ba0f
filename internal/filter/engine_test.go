package filter

import (
	"testing"

	"doseview/domain/core"
	"doseview/domain/table"
)

func screeningFixture(t *testing.T) *table.Table {
	t.Helper()
	schema := table.MustSchema(
		table.Column{Name: "compound", Kind: table.KindCategorical},
		table.Column{Name: "measurement_name", Kind: table.KindCategorical},
		table.Column{Name: "average", Kind: table.KindNumeric},
	)
	rows := []table.Row{
		{"A", "Rising Slope", 1.0},
		{"A", "Falling Slope", 2.0},
		{"B", "Rising Slope", 3.0},
		{"B", "Falling Slope", 4.0},
		{"C", "Rising Slope", 5.0},
	}
	tbl, err := table.New(schema, rows)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return tbl
}

func TestApplyConjunction(t *testing.T) {
	tbl := screeningFixture(t)
	filtered, err := Apply(tbl, []Predicate{
		{Column: "compound", Allowed: []string{"A", "B"}},
		{Column: "measurement_name", Allowed: []string{"Rising Slope"}},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if filtered.Len() != 2 {
		t.Fatalf("filtered.Len() = %d, want 2", filtered.Len())
	}
	// Stable: original row order survives
	if v, _ := filtered.Float(0, "average"); v != 1.0 {
		t.Errorf("row 0 average = %v, want 1.0", v)
	}
	if v, _ := filtered.Float(1, "average"); v != 3.0 {
		t.Errorf("row 1 average = %v, want 3.0", v)
	}
}

func TestApplyEmptyPredicateListReturnsFullTable(t *testing.T) {
	tbl := screeningFixture(t)
	filtered, err := Apply(tbl, nil)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if filtered.Len() != tbl.Len() {
		t.Errorf("filtered.Len() = %d, want %d", filtered.Len(), tbl.Len())
	}
}

func TestApplyEmptyAllowedSetPassesThrough(t *testing.T) {
	tbl := screeningFixture(t)
	filtered, err := Apply(tbl, []Predicate{
		{Column: "compound", Allowed: nil},
		{Column: "measurement_name", Allowed: []string{"Falling Slope"}},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if filtered.Len() != 2 {
		t.Errorf("filtered.Len() = %d, want 2", filtered.Len())
	}
}

func TestApplyUnknownColumn(t *testing.T) {
	tbl := screeningFixture(t)
	_, err := Apply(tbl, []Predicate{{Column: "nope", Allowed: []string{"x"}}})
	if !core.IsNotFoundError(err) {
		t.Errorf("Apply() error = %v, want not-found", err)
	}
}

func TestApplyIdempotent(t *testing.T) {
	tbl := screeningFixture(t)
	predicates := []Predicate{{Column: "compound", Allowed: []string{"B"}}}

	once, err := Apply(tbl, predicates)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	twice, err := Apply(once, predicates)
	if err != nil {
		t.Fatalf("Apply() second pass error = %v", err)
	}
	if once.Len() != twice.Len() {
		t.Errorf("second pass changed row count: %d vs %d", once.Len(), twice.Len())
	}
}

func TestApplyCommutes(t *testing.T) {
	tbl := screeningFixture(t)
	p1 := Predicate{Column: "compound", Allowed: []string{"A", "C"}}
	p2 := Predicate{Column: "measurement_name", Allowed: []string{"Rising Slope"}}

	ab, err := Apply(tbl, []Predicate{p1, p2})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	ba, err := Apply(tbl, []Predicate{p2, p1})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if ab.Len() != ba.Len() {
		t.Fatalf("order changed the result: %d vs %d rows", ab.Len(), ba.Len())
	}
	for i := 0; i < ab.Len(); i++ {
		va, _ := ab.Float(i, "average")
		vb, _ := ba.Float(i, "average")
		if va != vb {
			t.Errorf("row %d differs: %v vs %v", i, va, vb)
		}
	}
}

func TestEngineCachesByKey(t *testing.T) {
	engine := NewEngine(screeningFixture(t))
	predicates := []Predicate{{Column: "compound", Allowed: []string{"A"}}}

	first, err := engine.ApplyCached("k1", predicates)
	if err != nil {
		t.Fatalf("ApplyCached() error = %v", err)
	}
	second, err := engine.ApplyCached("k1", predicates)
	if err != nil {
		t.Fatalf("ApplyCached() error = %v", err)
	}
	if first != second {
		t.Error("same key should return the cached table")
	}
	if engine.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", engine.CacheSize())
	}

	if _, err := engine.ApplyCached("k2", nil); err != nil {
		t.Fatalf("ApplyCached() error = %v", err)
	}
	if engine.CacheSize() != 2 {
		t.Errorf("CacheSize() = %d, want 2", engine.CacheSize())
	}
}

func TestEngineApplyBypassesCache(t *testing.T) {
	engine := NewEngine(screeningFixture(t))
	if _, err := engine.Apply([]Predicate{{Column: "compound", Allowed: []string{"A"}}}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if engine.CacheSize() != 0 {
		t.Errorf("CacheSize() = %d, want 0", engine.CacheSize())
	}
}
