package selection

import (
	"sort"

	"doseview/domain/core"
)

// measurementWhitelist maps each read-out to the measurement names that
// make sense for it. Read-outs without an entry allow every measurement
// present in the data.
var measurementWhitelist = map[ReadOut][]string{
	ReadOutCalcium: {
		"Rising Slope",
		"Falling Slope",
		"Pulse Width 50%",
		"Area Under the Curve",
	},
	ReadOutVoltage: {
		"Pulse Width 10%",
		"Pulse Width 50%",
		"Pulse Width 90%",
		"Rising Slope",
		"Falling Slope",
		"Triangulation",
		"Amplitude",
	},
}

// defaultMeasurementCount is how many measurements the UI pre-selects
const defaultMeasurementCount = 3

// AllowedMeasurements returns the whitelist for a read-out, and whether
// one exists. No whitelist means "everything present is allowed".
func AllowedMeasurements(readOut ReadOut) ([]string, bool) {
	allowed, ok := measurementWhitelist[readOut]
	if !ok {
		return nil, false
	}
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out, true
}

// ResolveMeasurements computes the valid measurement options for a
// read-out: the whitelist intersected with the measurements actually
// present in the data, sorted lexicographically. Unrecognized read-outs
// fall back to all present measurements.
func ResolveMeasurements(readOut ReadOut, present []string) []string {
	allowed, hasWhitelist := measurementWhitelist[readOut]
	var resolved []string
	if !hasWhitelist {
		resolved = make([]string, len(present))
		copy(resolved, present)
	} else {
		allowedSet := make(map[string]bool, len(allowed))
		for _, m := range allowed {
			allowedSet[m] = true
		}
		for _, m := range present {
			if allowedSet[m] {
				resolved = append(resolved, m)
			}
		}
	}
	sort.Strings(resolved)
	return resolved
}

// DefaultMeasurements returns the UI's default pick: the first three of
// the resolved set
func DefaultMeasurements(resolved []string) []string {
	n := defaultMeasurementCount
	if n > len(resolved) {
		n = len(resolved)
	}
	out := make([]string, n)
	copy(out, resolved[:n])
	return out
}

// EffectiveMeasurements intersects the user's measurement picks with the
// resolved valid set, preserving the sorted order of the resolved set
func EffectiveMeasurements(sel Selection, presentMeasurements []string) []string {
	resolved := ResolveMeasurements(sel.ReadOut, presentMeasurements)
	picked := make(map[string]bool, len(sel.Measurements))
	for _, m := range sel.Measurements {
		picked[m] = true
	}
	var effective []string
	for _, m := range resolved {
		if picked[m] {
			effective = append(effective, m)
		}
	}
	return effective
}

// Validate checks the hard preconditions every downstream stage relies
// on: at least one compound selected, and at least one selected
// measurement valid for the read-out. A failure here is a terminal state
// for the render pass, not a recoverable error.
func Validate(sel Selection, presentMeasurements []string) error {
	if len(sel.Compounds) == 0 {
		return core.NewEmptySelectionError("compounds")
	}
	if len(sel.Measurements) == 0 {
		return core.NewEmptySelectionError("measurements")
	}
	if len(EffectiveMeasurements(sel, presentMeasurements)) == 0 {
		return core.NewEmptySelectionError("valid measurements")
	}
	return nil
}
