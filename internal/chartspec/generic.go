package chartspec

import (
	"fmt"
	"sort"
	"time"

	"doseview/domain/chart"
	"doseview/domain/core"
	"doseview/domain/table"
)

// PlotType selects the explorer chart shape
type PlotType string

const (
	PlotScatter   PlotType = "scatter"
	PlotLine      PlotType = "line"
	PlotBar       PlotType = "bar"
	PlotHistogram PlotType = "histogram"
	PlotBox       PlotType = "box"
)

// PlotTypes lists the explorer choices in menu order
func PlotTypes() []PlotType {
	return []PlotType{PlotScatter, PlotLine, PlotBar, PlotHistogram, PlotBox}
}

// Label returns the display name of a plot type
func (p PlotType) Label() string {
	switch p {
	case PlotScatter:
		return "Scatter Plot"
	case PlotLine:
		return "Line Chart"
	case PlotBar:
		return "Bar Chart"
	case PlotHistogram:
		return "Histogram"
	case PlotBox:
		return "Box Plot"
	}
	return string(p)
}

// GenericParams are the explorer's plot controls: free x/y/color axis
// choice over an arbitrary table
type GenericParams struct {
	PlotType PlotType
	XColumn  string
	YColumn  string
	ColorBy  string // empty means no grouping
	Title    string
	Height   int
	ShowGrid bool
}

// BuildGeneric constructs a chart spec for the sample-data explorer. Any
// construction fault comes back wrapped as a chart-construction error so
// the caller can report it and keep the summary and table panels alive.
func BuildGeneric(t *table.Table, params GenericParams) (*chart.Spec, error) {
	if t.Len() == 0 {
		return nil, core.ErrNoMatchingRows
	}
	if err := validateParams(t, params); err != nil {
		return nil, core.NewChartConstructionError(err)
	}

	height := params.Height
	if height <= 0 {
		height = 600
	}

	spec := &chart.Spec{
		Title:    params.Title,
		Height:   height,
		Rows:     1,
		Cols:     1,
		ShowGrid: params.ShowGrid,
		XLabel:   params.XColumn,
		YLabel:   params.YColumn,
	}

	panel := chart.Panel{Row: 1, Col: 1, Title: params.Title}

	switch params.PlotType {
	case PlotHistogram:
		series, err := histogramSeries(t, params.XColumn)
		if err != nil {
			return nil, core.NewChartConstructionError(err)
		}
		panel.Series = series
		spec.YLabel = "count"

	case PlotBox:
		series, err := boxSeries(t, params.YColumn, params.ColorBy)
		if err != nil {
			return nil, core.NewChartConstructionError(err)
		}
		panel.Series = series
		spec.XLabel = params.ColorBy

	default:
		axis, series, err := xySeries(t, params)
		if err != nil {
			return nil, core.NewChartConstructionError(err)
		}
		spec.Axis = axis
		panel.Series = series
	}

	spec.Panels = []chart.Panel{panel}
	return spec, nil
}

func validateParams(t *table.Table, params GenericParams) error {
	schema := t.Schema()
	switch params.PlotType {
	case PlotHistogram:
		if !schema.Has(params.XColumn) {
			return core.NewColumnNotFoundError(params.XColumn)
		}
	case PlotBox:
		if !schema.Has(params.YColumn) {
			return core.NewColumnNotFoundError(params.YColumn)
		}
	case PlotScatter, PlotLine, PlotBar:
		if !schema.Has(params.XColumn) {
			return core.NewColumnNotFoundError(params.XColumn)
		}
		if !schema.Has(params.YColumn) {
			return core.NewColumnNotFoundError(params.YColumn)
		}
	default:
		return fmt.Errorf("unknown plot type %q", params.PlotType)
	}
	if params.ColorBy != "" && !schema.Has(params.ColorBy) {
		return core.NewColumnNotFoundError(params.ColorBy)
	}
	return nil
}

// xySeries builds scatter/line/bar traces, one per color group. Numeric
// x columns plot at their raw values; categorical and datetime columns
// get a shared category axis with literal tick labels.
func xySeries(t *table.Table, params GenericParams) (*chart.Axis, []chart.Series, error) {
	kind, _ := t.Schema().KindOf(params.XColumn)

	var axis *chart.Axis
	if kind != table.KindNumeric {
		labels, err := distinctLabels(t, params.XColumn, kind)
		if err != nil {
			return nil, nil, err
		}
		axis = chart.NewStringAxis(labels)
	}

	mode := chart.ModeMarkers
	switch params.PlotType {
	case PlotLine:
		mode = chart.ModeLinesMarkers
	case PlotBar:
		mode = chart.ModeBars
	}

	groups, order := groupRows(t, params.ColorBy)

	var series []chart.Series
	for gi, group := range order {
		s := chart.Series{
			Name:        group,
			Mode:        mode,
			Color:       chart.ColorFor(gi),
			LegendGroup: group,
			ShowLegend:  params.ColorBy != "",
		}
		for _, i := range groups[group] {
			x, ok := xPosition(t, i, params.XColumn, kind, axis)
			if !ok {
				continue
			}
			y, ok := t.Float(i, params.YColumn)
			if !ok {
				continue
			}
			s.X = append(s.X, x)
			s.Y = append(s.Y, y)
		}
		if len(s.X) == 0 {
			continue
		}
		series = append(series, s)
	}
	return axis, series, nil
}

// histogramSeries hands the raw values to the renderer, which owns the
// binning
func histogramSeries(t *table.Table, column string) ([]chart.Series, error) {
	values, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	return []chart.Series{{
		Name:  column,
		Mode:  chart.ModeHistogram,
		X:     values,
		Color: chart.ColorFor(0),
	}}, nil
}

// boxSeries builds one box per color group, or a single box without
// grouping
func boxSeries(t *table.Table, yColumn, colorBy string) ([]chart.Series, error) {
	groups, order := groupRows(t, colorBy)

	var series []chart.Series
	for gi, group := range order {
		s := chart.Series{
			Name:        group,
			Mode:        chart.ModeBox,
			Color:       chart.ColorFor(gi),
			LegendGroup: group,
			ShowLegend:  colorBy != "",
		}
		if s.Name == "" {
			s.Name = yColumn
		}
		for _, i := range groups[group] {
			if y, ok := t.Float(i, yColumn); ok {
				s.Y = append(s.Y, y)
			}
		}
		if len(s.Y) == 0 {
			continue
		}
		series = append(series, s)
	}
	return series, nil
}

// groupRows partitions row indices by the color column's value, keeping
// groups in order of first appearance like the renderer's own grouping
// would. An empty column name yields a single anonymous group.
func groupRows(t *table.Table, colorBy string) (map[string][]int, []string) {
	groups := make(map[string][]int)
	var order []string

	for i := 0; i < t.Len(); i++ {
		key := ""
		if colorBy != "" {
			key = cellLabel(t, i, colorBy)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	return groups, order
}

// xPosition resolves a row's x coordinate: raw value for numeric
// columns, category index otherwise
func xPosition(t *table.Table, i int, column string, kind table.Kind, axis *chart.Axis) (float64, bool) {
	if kind == table.KindNumeric {
		return t.Float(i, column)
	}
	label := cellLabel(t, i, column)
	if label == "" {
		return 0, false
	}
	idx := axis.IndexOfLabel(label)
	if idx < 0 {
		return 0, false
	}
	return float64(idx), true
}

// cellLabel renders a cell as its categorical label
func cellLabel(t *table.Table, i int, column string) string {
	v, err := t.Value(i, column)
	if err != nil || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%g", val)
	}
	return fmt.Sprintf("%v", v)
}

// distinctLabels returns the ordered category labels of an x column:
// sorted values for categorical columns, chronological dates for
// datetime columns
func distinctLabels(t *table.Table, column string, kind table.Kind) ([]string, error) {
	if kind == table.KindDatetime {
		times, err := t.Times(column)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		var labels []string
		for _, ts := range sortedTimes(times) {
			label := ts.Format("2006-01-02")
			if label == "0001-01-01" || seen[label] {
				continue
			}
			seen[label] = true
			labels = append(labels, label)
		}
		return labels, nil
	}
	return t.DistinctStrings(column)
}

func sortedTimes(times []time.Time) []time.Time {
	out := make([]time.Time, len(times))
	copy(out, times)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
