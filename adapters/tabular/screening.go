package tabular

import (
	"fmt"

	"doseview/domain/selection"
	"doseview/domain/table"
	apperrors "doseview/internal/errors"
)

// requiredScreeningColumns must all be present in a screening file
var requiredScreeningColumns = []string{
	selection.ColReadOut,
	selection.ColCompound,
	selection.ColMeasurement,
	selection.ColScreen,
	selection.ColConcentration,
	selection.ColAverage,
	selection.ColSEM,
	selection.ColSTDEV,
}

// LoadScreening reads a compound-screening CSV or XLSX file into a typed
// dataset, validating the expected schema at the boundary so downstream
// code never has to re-check column names
func LoadScreening(path string) (*table.Dataset, error) {
	reader := NewDataReader(path)
	raw, err := reader.ReadData()
	if err != nil {
		return nil, apperrors.DataLoadError("failed to read screening file", err)
	}

	t, err := ToTable(raw)
	if err != nil {
		return nil, apperrors.DataLoadError("failed to type screening table", err)
	}

	schema := t.Schema()
	for _, column := range requiredScreeningColumns {
		if !schema.Has(column) {
			return nil, fmt.Errorf("screening file %s is missing required column %q", path, column)
		}
	}
	for _, column := range []string{selection.ColScreen, selection.ColConcentration, selection.ColAverage} {
		if kind, _ := schema.KindOf(column); kind != table.KindNumeric {
			return nil, fmt.Errorf("screening column %q must be numeric, inferred %s", column, kind)
		}
	}

	return &table.Dataset{
		Name:        "screening",
		Title:       "Compound Screening",
		Description: fmt.Sprintf("Screening data loaded from `%s`.", path),
		Table:       t,
	}, nil
}
