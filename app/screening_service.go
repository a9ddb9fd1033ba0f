package app

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"doseview/domain/chart"
	"doseview/domain/core"
	"doseview/domain/selection"
	"doseview/domain/table"
	"doseview/internal/chartspec"
	"doseview/internal/filter"
	"doseview/internal/paginate"
	"doseview/internal/summary"
)

// ScreeningService runs the full recomputation pass for the screening
// dashboard: resolve selection → filter → build chart spec, summarize
// and paginate. One user interaction triggers one pass; a new
// interaction simply supersedes the previous one.
type ScreeningService struct {
	dataset *table.Dataset
	engine  *filter.Engine
}

// NewScreeningService creates the service over a loaded dataset. The
// filter engine's memo cache lives as long as the dataset.
func NewScreeningService(ds *table.Dataset) *ScreeningService {
	return &ScreeningService{
		dataset: ds,
		engine:  filter.NewEngine(ds.Table),
	}
}

// Dataset returns the underlying dataset
func (s *ScreeningService) Dataset() *table.Dataset {
	return s.dataset
}

// Options are the valid choices the sidebar can offer for the current
// dataset and read-out
type Options struct {
	ReadOuts     []string
	Compounds    []string
	Measurements []string // resolved valid set for the read-out
	Defaults     []string // first three of the resolved set
}

// Options computes the sidebar option sets by intersecting the read-out
// whitelist with what is actually present in the data
func (s *ScreeningService) Options(readOut selection.ReadOut) (*Options, error) {
	readOuts, err := s.dataset.Table.DistinctStrings(selection.ColReadOut)
	if err != nil {
		return nil, err
	}
	compounds, err := s.dataset.Table.DistinctStrings(selection.ColCompound)
	if err != nil {
		return nil, err
	}
	present, err := s.dataset.Table.DistinctStrings(selection.ColMeasurement)
	if err != nil {
		return nil, err
	}
	resolved := selection.ResolveMeasurements(readOut, present)
	return &Options{
		ReadOuts:     readOuts,
		Compounds:    compounds,
		Measurements: resolved,
		Defaults:     selection.DefaultMeasurements(resolved),
	}, nil
}

// Result is everything one render pass produces. ChartErr carries a
// user-visible chart construction failure; the summary and table panels
// stay functional when it is set.
type Result struct {
	RenderPass core.RenderPassID
	Selection  selection.Selection
	Filtered   *table.Table
	Chart      *chart.Spec
	ChartErr   string
	Summary    *summary.Summary
	Page       *paginate.Page
	NoRows     bool
}

// Explore runs one full pass. It returns core.ErrEmptySelection before
// any filtering when the selection fails its preconditions; zero
// matching rows come back as a NoRows result, not an error.
func (s *ScreeningService) Explore(ctx context.Context, sel selection.Selection, pageReq paginate.Request) (*Result, error) {
	present, err := s.dataset.Table.DistinctStrings(selection.ColMeasurement)
	if err != nil {
		return nil, err
	}
	if err := selection.Validate(sel, present); err != nil {
		return nil, err
	}
	measurements := selection.EffectiveMeasurements(sel, present)

	predicates := []filter.Predicate{
		{Column: selection.ColReadOut, Allowed: []string{string(sel.ReadOut)}},
		{Column: selection.ColCompound, Allowed: sel.Compounds},
		{Column: selection.ColMeasurement, Allowed: measurements},
	}
	filtered, err := s.engine.ApplyCached(sel.Key(), predicates)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RenderPass: core.RenderPassID(core.NewID()),
		Selection:  sel,
		Filtered:   filtered,
	}
	if filtered.Len() == 0 {
		result.NoRows = true
		return result, nil
	}

	// The three output panels consume the filtered table independently
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		spec, err := buildScreeningChart(filtered, sel, measurements)
		if err != nil {
			// Chart faults suppress only the chart panel
			log.Printf("[ScreeningService] chart construction failed (pass %s): %v", result.RenderPass, err)
			result.ChartErr = err.Error()
			return nil
		}
		result.Chart = spec
		return nil
	})
	g.Go(func() error {
		sum, err := summary.SummarizeScreening(filtered)
		if err != nil {
			return err
		}
		result.Summary = sum
		return nil
	})
	g.Go(func() error {
		page, err := paginate.Paginate(filtered, pageReq)
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

func buildScreeningChart(t *table.Table, sel selection.Selection, measurements []string) (*chart.Spec, error) {
	builder, err := chartspec.NewBuilder(t, sel, measurements)
	if err != nil {
		return nil, err
	}
	return builder.Build()
}
