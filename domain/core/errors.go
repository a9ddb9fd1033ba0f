package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrUnknownDataset = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Selection errors. EmptySelection is a terminal UI state, not a
	// recoverable fault: the render pass stops before filtering runs.
	ErrEmptySelection = errors.New("empty selection")

	// A filter or search matched no rows. Informational, not a failure.
	ErrNoMatchingRows = errors.New("no matching rows")

	// Chart construction faults are caught at the chart boundary and
	// suppress only the chart panel.
	ErrChartConstruction = errors.New("chart construction failed")

	// Table errors
	ErrSchemaMismatch = errors.New("row does not match table schema")
	ErrTypeMismatch   = errors.New("column type mismatch")
)

// Error constructors with context
func NewUnknownDatasetError(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownDataset, name)
}

func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w %q", ErrColumnNotFound, column)
}

func NewEmptySelectionError(what string) error {
	return fmt.Errorf("%w: no %s selected", ErrEmptySelection, what)
}

func NewChartConstructionError(err error) error {
	return fmt.Errorf("%w: %v", ErrChartConstruction, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEmptySelection(err error) bool {
	return errors.Is(err, ErrEmptySelection)
}

func IsNoMatchingRows(err error) bool {
	return errors.Is(err, ErrNoMatchingRows)
}

func IsChartConstructionError(err error) bool {
	return errors.Is(err, ErrChartConstruction)
}
