package repo

import (
	"gig-marketplace-api/internal/repo/memdb"
)

type memDiagnostics struct{}

func (memDiagnostics) Ping() error { return nil }

// NewMemoryRepositories wires the in-memory store, used when no database is
// configured and by the service tests.
func NewMemoryRepositories() *Repositories {
	store := memdb.NewStore()

	return &Repositories{
		Diagnostics: memDiagnostics{},
		Job:         memdb.NewJobRepo(store),
		Bid:         memdb.NewBidRepo(store),
	}
}
