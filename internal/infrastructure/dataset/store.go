package dataset

import (
	"sync/atomic"

	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
)

// Store publishes snapshots to concurrent readers. Reads are lock-free; a
// publish swaps the pointer wholesale so no reader ever observes a partially
// rescored table.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store. Until the first publish, Snapshot returns
// a data-unavailable error.
func NewStore() *Store {
	return &Store{}
}

// Publish atomically replaces the current snapshot.
func (s *Store) Publish(snap *Snapshot) {
	s.current.Store(snap)
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, errors.ErrDataUnavailable()
	}
	return snap, nil
}

// Loaded reports whether a snapshot has been published.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
