package chart

import (
	"sort"
	"strconv"
)

// Axis is a shared categorical x-axis: the sorted distinct values of the
// x column across the entire filtered table. Every panel of one Spec
// places a given value at the same position so panels stay visually
// comparable. Built once per filter pass, immutable thereafter.
type Axis struct {
	Values []float64 `json:"values,omitempty"`
	Labels []string  `json:"labels"`

	index      map[float64]int
	labelIndex map[string]int
}

// NewAxis builds an axis from distinct values, sorting ascending. Tick
// labels are the literal value strings, not numeric positions.
func NewAxis(values []float64) *Axis {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	axis := &Axis{
		Values:     sorted,
		Labels:     make([]string, len(sorted)),
		index:      make(map[float64]int, len(sorted)),
		labelIndex: make(map[string]int, len(sorted)),
	}
	for i, v := range sorted {
		axis.Labels[i] = strconv.FormatFloat(v, 'g', -1, 64)
		axis.index[v] = i
		axis.labelIndex[axis.Labels[i]] = i
	}
	return axis
}

// NewStringAxis builds a categorical axis from already-ordered labels
func NewStringAxis(labels []string) *Axis {
	axis := &Axis{
		Labels:     make([]string, len(labels)),
		labelIndex: make(map[string]int, len(labels)),
		index:      map[float64]int{},
	}
	copy(axis.Labels, labels)
	for i, l := range labels {
		axis.labelIndex[l] = i
	}
	return axis
}

// IndexOf returns the category index of a value, or -1 when the value is
// not on the axis
func (a *Axis) IndexOf(v float64) int {
	if i, ok := a.index[v]; ok {
		return i
	}
	return -1
}

// IndexOfLabel returns the category index of a label, or -1 when the
// label is not on the axis
func (a *Axis) IndexOfLabel(label string) int {
	if i, ok := a.labelIndex[label]; ok {
		return i
	}
	return -1
}

// Len returns the number of categories
func (a *Axis) Len() int {
	return len(a.Labels)
}
