// Package memory provides in-memory implementations of the repository
// interfaces. They back the service-layer tests and small single-node
// deployments where Postgres is not available.
package memory

import (
	"context"
	"sync"
	"time"

	"filevault/internal/domain/repositories"
)

// Store holds all in-memory state. The per-entity repositories share one
// store so that cross-entity operations see a consistent view.
type Store struct {
	mu      sync.RWMutex
	folders map[string]*folderRecord
	files   map[string]*fileRecord
	grants  map[string]*grantRecord
	seq     int64

	// now is swappable so tests can control timestamps
	now func() time.Time
}

// NewStore creates an empty store using the wall clock
func NewStore() *Store {
	return &Store{
		folders: make(map[string]*folderRecord),
		files:   make(map[string]*fileRecord),
		grants:  make(map[string]*grantRecord),
		now:     time.Now,
	}
}

// SetClock replaces the store's time source. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// nextSeq must be called with the write lock held
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// TransactionManager returns a no-op transaction manager. The store's
// mutex already serializes writes, so the callback simply runs inline.
func (s *Store) TransactionManager() repositories.TransactionManager {
	return &noopTxManager{}
}

type noopTxManager struct{}

func (m *noopTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
