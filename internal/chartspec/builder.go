package chartspec

import (
	"fmt"
	"sort"
	"strconv"

	"doseview/domain/chart"
	"doseview/domain/core"
	"doseview/domain/selection"
	"doseview/domain/table"
)

const (
	minChartHeight    = 400
	heightPerPanelRow = 250
	meanSegmentHalf   = 0.2
)

// Builder turns a filtered screening table into an abstract chart
// specification: one panel grid with one trace per compound, computed
// means and error bars, and a concentration axis shared by every panel.
type Builder struct {
	table        *table.Table
	sel          selection.Selection
	measurements []string // effective measurements, resolver order
	axis         *chart.Axis
	colors       map[string]string
}

// NewBuilder creates a builder over an already-filtered table. The
// measurement list is the resolved effective set; compound colors are
// assigned by selection order and stay stable within one render.
func NewBuilder(t *table.Table, sel selection.Selection, measurements []string) (*Builder, error) {
	if t.Len() == 0 {
		return nil, core.ErrNoMatchingRows
	}
	if len(measurements) == 0 {
		return nil, core.NewEmptySelectionError("measurements")
	}

	concentrations, err := t.DistinctFloats(selection.ColConcentration)
	if err != nil {
		return nil, core.NewChartConstructionError(err)
	}

	colors := make(map[string]string, len(sel.Compounds))
	for i, compound := range sel.Compounds {
		colors[compound] = chart.ColorFor(i)
	}

	return &Builder{
		table:        t,
		sel:          sel,
		measurements: measurements,
		axis:         chart.NewAxis(concentrations),
		colors:       colors,
	}, nil
}

// Build constructs the chart spec for the selection's layout mode
func (b *Builder) Build() (*chart.Spec, error) {
	screens, err := b.table.DistinctFloats(selection.ColScreen)
	if err != nil {
		return nil, core.NewChartConstructionError(err)
	}

	if b.sel.PoolScreens && len(screens) > 1 {
		return b.buildPooled(), nil
	}
	return b.buildFaceted(screens), nil
}

// buildFaceted lays out one panel column per screen and one panel row
// per measurement. Legend visibility goes to the first panel where a
// compound appears; iteration is row-major (measurement outer, screen
// inner), which fixes legend ordering but not data placement.
func (b *Builder) buildFaceted(screens []float64) *chart.Spec {
	cols := len(screens)
	if cols == 0 {
		cols = 1
	}

	spec := &chart.Spec{
		Title:  "Compound Response by Screen",
		Height: panelHeight(len(b.measurements)),
		Rows:   len(b.measurements),
		Cols:   cols,
		Axis:   b.axis,
		XLabel: "Concentration",
		YLabel: "Average",
	}

	legendSeen := make(map[string]bool)

	for mi, measurement := range b.measurements {
		for si, screen := range screens {
			panel := chart.Panel{
				Row:   mi + 1,
				Col:   si + 1,
				Title: fmt.Sprintf("%s — Screen %s", measurement, formatScreen(screen)),
			}
			for _, compound := range b.sel.Compounds {
				series, ok := b.compoundSeries(measurement, compound, &screen)
				if !ok {
					continue
				}
				series.ShowLegend = !legendSeen[compound]
				legendSeen[compound] = true
				panel.Series = append(panel.Series, series)
			}
			spec.Panels = append(spec.Panels, panel)
		}
	}

	return spec
}

// buildPooled combines screens: every replicate row becomes an
// individual point at its concentration's shared x-slot, overlaid with a
// short horizontal segment at the arithmetic mean of the replicates.
// Mean segments never enter the legend.
func (b *Builder) buildPooled() *chart.Spec {
	spec := &chart.Spec{
		Title:  "Compound Response (screens pooled)",
		Height: panelHeight(len(b.measurements)),
		Rows:   len(b.measurements),
		Cols:   1,
		Axis:   b.axis,
		XLabel: "Concentration",
		YLabel: "Average",
	}

	legendSeen := make(map[string]bool)

	for mi, measurement := range b.measurements {
		panel := chart.Panel{
			Row:   mi + 1,
			Col:   1,
			Title: measurement,
		}
		for _, compound := range b.sel.Compounds {
			points, byConcentration := b.pooledPoints(measurement, compound)
			if len(points.X) == 0 {
				continue
			}
			points.ShowLegend = !legendSeen[compound]
			legendSeen[compound] = true
			panel.Series = append(panel.Series, points)

			for _, segment := range b.meanSegments(compound, byConcentration) {
				panel.Series = append(panel.Series, segment)
			}
		}
		spec.Panels = append(spec.Panels, panel)
	}

	return spec
}

// compoundSeries builds the trace for one (measurement, compound) pair,
// optionally narrowed to a single screen. Returns false when no rows
// match; empty traces are never emitted.
func (b *Builder) compoundSeries(measurement, compound string, screen *float64) (chart.Series, bool) {
	type point struct {
		concentration float64
		average       float64
		sem           float64
		hasSEM        bool
	}
	var points []point

	for i := 0; i < b.table.Len(); i++ {
		if !b.rowMatches(i, measurement, compound, screen) {
			continue
		}
		concentration, ok := b.table.Float(i, selection.ColConcentration)
		if !ok {
			continue
		}
		average, ok := b.table.Float(i, selection.ColAverage)
		if !ok {
			continue
		}
		sem, hasSEM := b.table.Float(i, selection.ColSEM)
		points = append(points, point{concentration, average, sem, hasSEM})
	}
	if len(points) == 0 {
		return chart.Series{}, false
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].concentration < points[j].concentration
	})

	series := chart.Series{
		Name:        compound,
		Mode:        chart.ModeLinesMarkers,
		Color:       b.colors[compound],
		LegendGroup: compound,
	}
	for _, p := range points {
		idx := b.axis.IndexOf(p.concentration)
		series.X = append(series.X, float64(idx))
		series.Y = append(series.Y, p.average)
		series.ErrorY = append(series.ErrorY, p.sem)
		series.HoverText = append(series.HoverText, hoverText(compound, p.concentration, p.average, p.sem, p.hasSEM))
	}
	return series, true
}

// pooledPoints collects every replicate of (measurement, compound) into
// one marker series and groups averages by concentration for the mean
// overlay
func (b *Builder) pooledPoints(measurement, compound string) (chart.Series, map[float64][]float64) {
	series := chart.Series{
		Name:        compound,
		Mode:        chart.ModeMarkers,
		Color:       b.colors[compound],
		LegendGroup: compound,
	}
	byConcentration := make(map[float64][]float64)

	for i := 0; i < b.table.Len(); i++ {
		if !b.rowMatches(i, measurement, compound, nil) {
			continue
		}
		concentration, ok := b.table.Float(i, selection.ColConcentration)
		if !ok {
			continue
		}
		average, ok := b.table.Float(i, selection.ColAverage)
		if !ok {
			continue
		}
		sem, hasSEM := b.table.Float(i, selection.ColSEM)

		idx := b.axis.IndexOf(concentration)
		series.X = append(series.X, float64(idx))
		series.Y = append(series.Y, average)
		series.HoverText = append(series.HoverText, hoverText(compound, concentration, average, sem, hasSEM))
		byConcentration[concentration] = append(byConcentration[concentration], average)
	}
	return series, byConcentration
}

// meanSegments emits one short horizontal segment per concentration,
// centered on the shared x-slot, at the arithmetic mean of the
// replicate averages
func (b *Builder) meanSegments(compound string, byConcentration map[float64][]float64) []chart.Series {
	concentrations := make([]float64, 0, len(byConcentration))
	for c := range byConcentration {
		concentrations = append(concentrations, c)
	}
	sort.Float64s(concentrations)

	var segments []chart.Series
	for _, c := range concentrations {
		values := byConcentration[c]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		mean := sum / float64(len(values))

		idx := float64(b.axis.IndexOf(c))
		segments = append(segments, chart.Series{
			Name:        compound + " mean",
			Mode:        chart.ModeSegment,
			X:           []float64{idx - meanSegmentHalf, idx + meanSegmentHalf},
			Y:           []float64{mean, mean},
			Color:       b.colors[compound],
			LegendGroup: compound,
			ShowLegend:  false,
		})
	}
	return segments
}

// rowMatches tests row i against measurement, compound and optionally a
// screen value
func (b *Builder) rowMatches(i int, measurement, compound string, screen *float64) bool {
	if m, ok := b.table.String(i, selection.ColMeasurement); !ok || m != measurement {
		return false
	}
	if c, ok := b.table.String(i, selection.ColCompound); !ok || c != compound {
		return false
	}
	if screen != nil {
		s, ok := b.table.Float(i, selection.ColScreen)
		if !ok || s != *screen {
			return false
		}
	}
	return true
}

// panelHeight scales total figure height with the number of panel rows
func panelHeight(measurementCount int) int {
	h := heightPerPanelRow * measurementCount
	if h < minChartHeight {
		return minChartHeight
	}
	return h
}

// hoverText formats the per-point hover string with compound name,
// concentration, y value and SEM where present
func hoverText(compound string, concentration, y, sem float64, hasSEM bool) string {
	if hasSEM {
		return fmt.Sprintf("%s | conc %s | avg %.2f | SEM %.2f",
			compound, strconv.FormatFloat(concentration, 'g', -1, 64), y, sem)
	}
	return fmt.Sprintf("%s | conc %s | avg %.2f",
		compound, strconv.FormatFloat(concentration, 'g', -1, 64), y)
}

// formatScreen renders a screen number without trailing decimals
func formatScreen(screen float64) string {
	return strconv.FormatFloat(screen, 'f', -1, 64)
}
