package store

import (
	"context"
	"sync"

	"github.com/viant/idprovider/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service.
// It keeps entities of type *T mapped by a comparable key K obtained from the
// supplied keySelector function.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	pending     map[K]*creation[T]
	keySelector func(*T) K
	matcher     func(*T, []*dao.Parameter) bool
}

// creation tracks a LoadOrCreate call in flight; done is closed once v or err
// is set.
type creation[T any] struct {
	done chan struct{}
	v    *T
	err  error
}

// StoreOption customises a MemoryStore.
type StoreOption[K comparable, T any] func(s *MemoryStore[K, T])

// WithMatcher sets the predicate List uses to filter records by parameters.
func WithMatcher[K comparable, T any](matcher func(*T, []*dao.Parameter) bool) StoreOption[K, T] {
	return func(s *MemoryStore[K, T]) { s.matcher = matcher }
}

// NewMemoryStore creates a new MemoryStore.
// keySelector extracts the entity key (usually the ID or Name field) from a value.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, options ...StoreOption[K, T]) *MemoryStore[K, T] {
	ret := &MemoryStore[K, T]{
		records:     make(map[K]*T),
		pending:     make(map[K]*creation[T]),
		keySelector: keySelector,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

// Load returns a record by key or dao.ErrNotFound.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// LoadOrCreate returns the record stored under key, creating and storing it
// with create when missing. create runs without the store lock, at most once
// at a time per key; concurrent callers for the same key wait for its result
// and other keys stay available meanwhile. A failed create is not cached.
func (s *MemoryStore[K, T]) LoadOrCreate(ctx context.Context, key K, create func() (*T, error)) (*T, bool, error) {
	s.mu.Lock()
	if v, ok := s.records[key]; ok {
		s.mu.Unlock()
		return v, false, nil
	}
	if inFlight, ok := s.pending[key]; ok {
		s.mu.Unlock()
		select {
		case <-inFlight.done:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
		if inFlight.err != nil {
			return nil, false, inFlight.err
		}
		return inFlight.v, false, nil
	}
	inFlight := &creation[T]{done: make(chan struct{})}
	s.pending[key] = inFlight
	s.mu.Unlock()

	v, err := create()
	if err == nil && v == nil {
		err = dao.ErrNilEntity
	}
	inFlight.v, inFlight.err = v, err

	s.mu.Lock()
	delete(s.pending, key)
	if err == nil {
		s.records[key] = v
	}
	s.mu.Unlock()
	close(inFlight.done)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// List returns all stored records accepted by the matcher, in no particular order.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		if s.matcher != nil && !s.matcher(v, parameters) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *MemoryStore[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
