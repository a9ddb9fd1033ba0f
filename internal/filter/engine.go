package filter

import (
	"sync"

	"doseview/domain/core"
	"doseview/domain/table"
	"doseview/internal"
)

var logger = internal.DefaultLogger.WithComponent("FilterEngine")

// Predicate is a set-membership test over one categorical column. An
// empty Allowed set means "no filtering on this column": the UI treats an
// empty multi-select as "don't filter yet", not "exclude everything".
type Predicate struct {
	Column  string
	Allowed []string
}

// matches reports whether the cell at row i passes the predicate
func (p Predicate) matches(t *table.Table, i int) bool {
	if len(p.Allowed) == 0 {
		return true
	}
	value, ok := t.String(i, p.Column)
	if !ok {
		return false
	}
	for _, allowed := range p.Allowed {
		if value == allowed {
			return true
		}
	}
	return false
}

// Apply filters a table down to the rows passing every predicate
// (logical AND). The filter is stable: original row order is preserved,
// and the input table is never modified. An empty predicate list returns
// the full table.
func Apply(t *table.Table, predicates []Predicate) (*table.Table, error) {
	for _, p := range predicates {
		if !t.Schema().Has(p.Column) {
			return nil, core.NewColumnNotFoundError(p.Column)
		}
	}
	if len(predicates) == 0 {
		return t, nil
	}
	return t.Filter(func(i int) bool {
		for _, p := range predicates {
			if !p.matches(t, i) {
				return false
			}
		}
		return true
	}), nil
}

// Engine applies predicates over one base table and memoizes results.
// The same (read-out, compounds, measurements) triple recurs across
// re-renders triggered by unrelated widget changes, so filtered subsets
// are cached for the dataset-load lifetime. Keys must fully determine
// outputs; the base table is read-only after load.
type Engine struct {
	base *table.Table

	mu    sync.RWMutex
	cache map[string]*table.Table
}

// NewEngine creates a filter engine over a loaded table
func NewEngine(base *table.Table) *Engine {
	return &Engine{
		base:  base,
		cache: make(map[string]*table.Table),
	}
}

// Base returns the unfiltered table
func (e *Engine) Base() *table.Table {
	return e.base
}

// Apply filters the base table without touching the cache
func (e *Engine) Apply(predicates []Predicate) (*table.Table, error) {
	return Apply(e.base, predicates)
}

// ApplyCached filters the base table, reusing a previous result stored
// under key. The caller derives key from the resolved selection fields
// alone, with no hidden dependency on mutable state.
func (e *Engine) ApplyCached(key string, predicates []Predicate) (*table.Table, error) {
	e.mu.RLock()
	if cached, ok := e.cache[key]; ok {
		e.mu.RUnlock()
		logger.Debug("cache hit for %q", key)
		return cached, nil
	}
	e.mu.RUnlock()

	filtered, err := Apply(e.base, predicates)
	if err != nil {
		return nil, err
	}
	logger.Debug("cached %d rows under %q", filtered.Len(), key)

	e.mu.Lock()
	e.cache[key] = filtered
	e.mu.Unlock()
	return filtered, nil
}

// CacheSize returns the number of memoized filter results
func (e *Engine) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
