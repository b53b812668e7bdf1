package inmemorystore

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store.
type Store struct {
	states sync.Map // Key: path string, Value: nodestore.Status
	values sync.Map // Key: path string, Value: final value
}

// New creates a new, empty in-memory store.
func New() nodestore.Store {
	return &Store{}
}

// SetStatus records a Pending or Building transition for a path.
func (s *Store) SetStatus(ctx context.Context, id nodeid.Path, status nodestore.Status) error {
	if status == nodestore.StatusMaterialized {
		return fmt.Errorf("status of %q can only become materialized through SetValue", id.String())
	}
	if _, done := s.values.Load(id.String()); done {
		return fmt.Errorf("path %q is already materialized", id.String())
	}
	s.states.Store(id.String(), status)
	return nil
}

// GetStatus retrieves the status of a path. Unknown paths are pending.
func (s *Store) GetStatus(ctx context.Context, id nodeid.Path) (nodestore.Status, error) {
	status, ok := s.states.Load(id.String())
	if !ok {
		return nodestore.StatusPending, nil
	}
	return status.(nodestore.Status), nil
}

// SetValue records the final value of a path exactly once.
func (s *Store) SetValue(ctx context.Context, id nodeid.Path, value any) error {
	if _, loaded := s.values.LoadOrStore(id.String(), value); loaded {
		return fmt.Errorf("path %q is already materialized", id.String())
	}
	s.states.Store(id.String(), nodestore.StatusMaterialized)
	return nil
}

// GetValue retrieves the final value of a materialized path.
func (s *Store) GetValue(ctx context.Context, id nodeid.Path) (any, bool, error) {
	v, ok := s.values.Load(id.String())
	return v, ok, nil
}
