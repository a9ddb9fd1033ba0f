package ports

import (
	"doseview/domain/table"
)

// DatasetSource loads one dataset into memory at startup. Implementations
// are file readers or generators; the loaded table is immutable afterward.
type DatasetSource interface {
	Load() (*table.Dataset, error)
}

// DatasetSourceFunc adapts a plain function to a DatasetSource
type DatasetSourceFunc func() (*table.Dataset, error)

// Load implements DatasetSource
func (f DatasetSourceFunc) Load() (*table.Dataset, error) {
	return f()
}
