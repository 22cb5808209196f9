// Package memory is the in-process lending store. It backs the service when
// STORE_BACKEND=memory and every application-level test.
package memory

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// Store holds items and loans for a single process. Reads and commits take
// mu; loan writes for one item are additionally serialized by that item's
// mutex in itemLocks.
type Store struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]*models.Item
	itemOrder []uuid.UUID
	loans     map[uuid.UUID]*models.Loan
	// activeByItem maps an item to its single ACTIVE loan.
	activeByItem map[uuid.UUID]uuid.UUID

	seq atomic.Int64

	locksMu   sync.Mutex
	itemLocks map[uuid.UUID]*sync.Mutex
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		items:        make(map[uuid.UUID]*models.Item),
		loans:        make(map[uuid.UUID]*models.Loan),
		activeByItem: make(map[uuid.UUID]uuid.UUID),
		itemLocks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) itemMutex(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.itemLocks[id]
	if !ok {
		m = &sync.Mutex{}
		s.itemLocks[id] = m
	}
	return m
}

func (s *Store) nextSeq() int64 {
	return s.seq.Add(1)
}
