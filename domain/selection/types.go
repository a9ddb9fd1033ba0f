package selection

import (
	"sort"
	"strings"
)

// ReadOut is the measurement read-out family of a screening dataset
type ReadOut string

const (
	ReadOutCalcium ReadOut = "calcium"
	ReadOutVoltage ReadOut = "voltage"
	ReadOutOther   ReadOut = "other"
)

// Canonical column names of the screening schema
const (
	ColReadOut       = "read-out"
	ColCompound      = "compound"
	ColMeasurement   = "measurement_name"
	ColScreen        = "screen"
	ColConcentration = "concentration"
	ColAverage       = "average"
	ColSEM           = "SEM"
	ColSTDEV         = "STDEV"
)

// Selection is the user's current choice for one render pass. It is
// rebuilt on every interaction and never persisted. Screens are always
// derived from the filtered table, never chosen directly.
type Selection struct {
	ReadOut      ReadOut  `json:"read_out"`
	Compounds    []string `json:"compounds"`
	Measurements []string `json:"measurements"`
	PoolScreens  bool     `json:"pool_screens"`
}

// Key returns a canonical cache key for this selection. Two selections
// with the same read-out, compound set and measurement set produce the
// same key regardless of element order.
func (s Selection) Key() string {
	compounds := make([]string, len(s.Compounds))
	copy(compounds, s.Compounds)
	sort.Strings(compounds)

	measurements := make([]string, len(s.Measurements))
	copy(measurements, s.Measurements)
	sort.Strings(measurements)

	var b strings.Builder
	b.WriteString(string(s.ReadOut))
	b.WriteString("|")
	b.WriteString(strings.Join(compounds, ","))
	b.WriteString("|")
	b.WriteString(strings.Join(measurements, ","))
	return b.String()
}
