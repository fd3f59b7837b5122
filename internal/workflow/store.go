package workflow

import (
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
)

// Store is the in-memory registry of live workflow instances. There is no
// shared mutable state between instances, so the store only guards its own
// map; each workflow serializes its own transitions.
type Store struct {
	mu        sync.RWMutex
	workflows map[uuid.UUID]*Workflow
}

func NewStore() *Store {
	return &Store{workflows: make(map[uuid.UUID]*Workflow)}
}

// Put registers a new instance.
func (s *Store) Put(w *Workflow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows[w.ID()] = w
}

// Get returns a live instance by id.
func (s *Store) Get(id uuid.UUID) (*Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workflows[id]
	if !ok {
		return nil, domainErrors.ErrWorkflowNotFound
	}
	return w, nil
}

// Remove discards an instance from the registry.
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, id)
}

// Len reports the number of live instances.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workflows)
}
