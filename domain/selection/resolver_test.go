package selection

import (
	"reflect"
	"testing"

	"doseview/domain/core"
)

func TestResolveMeasurementsIntersectsWhitelist(t *testing.T) {
	present := []string{"Rising Slope", "Foo", "Amplitude"}

	resolved := ResolveMeasurements(ReadOutVoltage, present)
	want := []string{"Amplitude", "Rising Slope"}
	if !reflect.DeepEqual(resolved, want) {
		t.Errorf("ResolveMeasurements() = %v, want %v", resolved, want)
	}
}

func TestResolveMeasurementsCalcium(t *testing.T) {
	present := []string{"Pulse Width 50%", "Amplitude", "Area Under the Curve", "Triangulation"}

	resolved := ResolveMeasurements(ReadOutCalcium, present)
	want := []string{"Area Under the Curve", "Pulse Width 50%"}
	if !reflect.DeepEqual(resolved, want) {
		t.Errorf("ResolveMeasurements() = %v, want %v", resolved, want)
	}
}

func TestResolveMeasurementsNoWhitelistFallsBackToPresent(t *testing.T) {
	present := []string{"Zeta", "Alpha"}

	resolved := ResolveMeasurements(ReadOutOther, present)
	want := []string{"Alpha", "Zeta"}
	if !reflect.DeepEqual(resolved, want) {
		t.Errorf("ResolveMeasurements() = %v, want %v", resolved, want)
	}
}

func TestResolveMeasurementsSorted(t *testing.T) {
	present := []string{"Rising Slope", "Falling Slope", "Amplitude"}

	resolved := ResolveMeasurements(ReadOutVoltage, present)
	for i := 1; i < len(resolved); i++ {
		if resolved[i-1] > resolved[i] {
			t.Errorf("resolved set not sorted: %v", resolved)
		}
	}
}

func TestDefaultMeasurements(t *testing.T) {
	tests := []struct {
		name     string
		resolved []string
		want     []string
	}{
		{"more than three", []string{"A", "B", "C", "D"}, []string{"A", "B", "C"}},
		{"exactly three", []string{"A", "B", "C"}, []string{"A", "B", "C"}},
		{"fewer than three", []string{"A"}, []string{"A"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultMeasurements(tt.resolved)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DefaultMeasurements(%v) = %v, want %v", tt.resolved, got, tt.want)
			}
		})
	}
}

func TestEffectiveMeasurementsKeepsResolvedOrder(t *testing.T) {
	sel := Selection{
		ReadOut:      ReadOutVoltage,
		Compounds:    []string{"A"},
		Measurements: []string{"Rising Slope", "Amplitude", "Not Real"},
	}
	present := []string{"Rising Slope", "Amplitude", "Falling Slope"}

	effective := EffectiveMeasurements(sel, present)
	want := []string{"Amplitude", "Rising Slope"}
	if !reflect.DeepEqual(effective, want) {
		t.Errorf("EffectiveMeasurements() = %v, want %v", effective, want)
	}
}

func TestValidate(t *testing.T) {
	present := []string{"Rising Slope", "Falling Slope"}

	tests := []struct {
		name    string
		sel     Selection
		wantErr bool
	}{
		{
			name: "valid selection",
			sel: Selection{
				ReadOut:      ReadOutCalcium,
				Compounds:    []string{"CMP-001"},
				Measurements: []string{"Rising Slope"},
			},
			wantErr: false,
		},
		{
			name: "no compounds",
			sel: Selection{
				ReadOut:      ReadOutCalcium,
				Compounds:    nil,
				Measurements: []string{"Rising Slope"},
			},
			wantErr: true,
		},
		{
			name: "no measurements",
			sel: Selection{
				ReadOut:   ReadOutCalcium,
				Compounds: []string{"CMP-001"},
			},
			wantErr: true,
		},
		{
			name: "picks all invalid for read-out",
			sel: Selection{
				ReadOut:      ReadOutCalcium,
				Compounds:    []string{"CMP-001"},
				Measurements: []string{"Amplitude"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.sel, present)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !core.IsEmptySelection(err) {
				t.Errorf("Validate() error should be an empty-selection error, got %v", err)
			}
		})
	}
}

func TestSelectionKeyOrderIndependent(t *testing.T) {
	a := Selection{
		ReadOut:      ReadOutCalcium,
		Compounds:    []string{"B", "A"},
		Measurements: []string{"Y", "X"},
	}
	b := Selection{
		ReadOut:      ReadOutCalcium,
		Compounds:    []string{"A", "B"},
		Measurements: []string{"X", "Y"},
	}
	if a.Key() != b.Key() {
		t.Errorf("keys differ for equivalent selections: %q vs %q", a.Key(), b.Key())
	}

	c := b
	c.ReadOut = ReadOutVoltage
	if b.Key() == c.Key() {
		t.Error("keys should differ across read-outs")
	}
}
