package app

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"doseview/domain/chart"
	"doseview/domain/core"
	"doseview/domain/table"
	"doseview/internal/chartspec"
	"doseview/internal/filter"
	"doseview/internal/paginate"
	"doseview/internal/summary"
)

// ExplorerService drives the generic sample-data explorer: dataset
// choice, one optional categorical filter, free plot parameters.
// Handlers call Explore from concurrent request goroutines, so the
// store handle and the engine map share one mutex.
type ExplorerService struct {
	mu      sync.Mutex
	store   *table.Store
	engines map[string]*filter.Engine
}

// NewExplorerService creates the service over a dataset store
func NewExplorerService(store *table.Store) *ExplorerService {
	return &ExplorerService{
		store:   store,
		engines: make(map[string]*filter.Engine),
	}
}

// Store returns the dataset store
func (s *ExplorerService) Store() *table.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store
}

// ReplaceStore swaps in a freshly generated store (sample refresh) and
// drops the per-dataset filter caches
func (s *ExplorerService) ReplaceStore(store *table.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	s.engines = make(map[string]*filter.Engine)
}

// ExploreRequest is one explorer interaction
type ExploreRequest struct {
	Dataset string
	Params  chartspec.GenericParams
	// FilterColumn/FilterValues is the dataset's multi-select (symbols,
	// cities). Empty values mean no filtering yet.
	FilterColumn string
	FilterValues []string
	Page         paginate.Request
}

// ExploreResult mirrors the screening result for the generic explorer
type ExploreResult struct {
	Dataset  *table.Dataset
	Filtered *table.Table
	Chart    *chart.Spec
	ChartErr string
	Summary  *summary.Summary
	Page     *paginate.Page
	NoRows   bool
}

// Explore runs one explorer pass: filter, then chart, summary and page
// over the filtered table
func (s *ExplorerService) Explore(ctx context.Context, req ExploreRequest) (*ExploreResult, error) {
	ds, engine, err := s.datasetAndEngine(req.Dataset)
	if err != nil {
		return nil, err
	}

	var predicates []filter.Predicate
	if req.FilterColumn != "" {
		predicates = append(predicates, filter.Predicate{
			Column:  req.FilterColumn,
			Allowed: req.FilterValues,
		})
	}
	filtered, err := engine.Apply(predicates)
	if err != nil {
		return nil, err
	}

	result := &ExploreResult{Dataset: ds, Filtered: filtered}
	if filtered.Len() == 0 {
		result.NoRows = true
		return result, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		spec, err := chartspec.BuildGeneric(filtered, req.Params)
		if err != nil {
			// Chart faults suppress only the chart panel
			log.Printf("[ExplorerService] chart construction failed: %v", err)
			result.ChartErr = err.Error()
			return nil
		}
		result.Chart = spec
		return nil
	})
	g.Go(func() error {
		sum, err := summary.Summarize(filtered)
		if err != nil {
			return err
		}
		result.Summary = sum
		return nil
	})
	g.Go(func() error {
		page, err := paginate.Paginate(filtered, req.Page)
		if err != nil {
			if core.IsNoMatchingRows(err) {
				return nil
			}
			return err
		}
		result.Page = page
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// datasetAndEngine resolves a dataset and its filter engine in one
// critical section, creating the engine on first use. A single lock
// keeps the engine paired with the store generation it was built from.
func (s *ExplorerService) datasetAndEngine(name string) (*table.Dataset, *filter.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := s.store.Get(name)
	if err != nil {
		return nil, nil, err
	}
	engine, ok := s.engines[ds.Name]
	if !ok {
		engine = filter.NewEngine(ds.Table)
		s.engines[ds.Name] = engine
	}
	return ds, engine, nil
}
