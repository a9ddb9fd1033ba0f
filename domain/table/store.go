package table

import (
	"sort"
	"sync"

	"doseview/domain/core"
)

// Dataset is a named table plus its display metadata
type Dataset struct {
	ID          core.DatasetID
	Name        string // identifier, e.g. "stock_prices"
	Title       string // display title, e.g. "Stock Prices"
	Description string // Markdown, rendered in the UI help panel
	Table       *Table
}

// Store holds the loaded datasets for one process. Tables are read-only
// after load; the store itself only mutates when a dataset is replaced
// wholesale (sample-data refresh).
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewStore creates an empty dataset store
func NewStore() *Store {
	return &Store{datasets: make(map[string]*Dataset)}
}

// Register adds or replaces a dataset under its name
func (s *Store) Register(ds *Dataset) {
	if ds.ID.String() == "" {
		ds.ID = core.DatasetID(core.NewID())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.Name] = ds
}

// Get returns the dataset registered under name
func (s *Store) Get(name string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[name]
	if !ok {
		return nil, core.NewUnknownDatasetError(name)
	}
	return ds, nil
}

// Names returns the sorted dataset names
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.datasets))
	for name := range s.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered datasets
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
