// Package memdb keeps the whole marketplace state in process memory. It backs
// the service tests and the no-database demo mode; the pgdb package is the
// production implementation of the same interfaces.
package memdb

import (
	"sync"
	"time"

	"gig-marketplace-api/internal/entity"

	"github.com/google/uuid"
)

// Store owns all maps under one mutex, which makes the compound transitions
// (hire, cascade delete) single critical sections. Insertion order is kept in
// side slices so listings stay stable between calls.
type Store struct {
	mu       sync.RWMutex
	jobs     map[uuid.UUID]*entity.Job
	bids     map[uuid.UUID]*entity.Bid
	jobOrder []uuid.UUID
	bidOrder []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		jobs: make(map[uuid.UUID]*entity.Job),
		bids: make(map[uuid.UUID]*entity.Bid),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
