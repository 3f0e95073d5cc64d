package memory

import (
	"sync"

	"robinrocks-be/internal/repository/specification"
)

// store is an insertion-ordered table guarded by a RWMutex. Records are
// copied on the way in and out so callers never share a pointer with it.
type store[K comparable, T any] struct {
	mu    sync.RWMutex
	order []K
	rows  map[K]T
	key   func(*T) K
}

func newStore[K comparable, T any](key func(*T) K, seed ...T) *store[K, T] {
	s := &store[K, T]{rows: make(map[K]T), key: key}
	for i := range seed {
		s.put(&seed[i])
	}
	return s
}

func (s *store[K, T]) put(item *T) {
	k := s.key(item)
	if _, ok := s.rows[k]; !ok {
		s.order = append(s.order, k)
	}
	s.rows[k] = *item
}

func (s *store[K, T]) upsert(item *T) {
	s.mu.Lock()
	s.put(item)
	s.mu.Unlock()
}

// update replaces an existing row and reports whether it existed.
func (s *store[K, T]) update(item *T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(item)
	if _, ok := s.rows[k]; !ok {
		return false
	}
	s.rows[k] = *item
	return true
}

func (s *store[K, T]) delete(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[k]; !ok {
		return false
	}
	delete(s.rows, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *store[K, T]) get(k K) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[k]
	if !ok {
		return nil, false
	}
	return &row, true
}

func (s *store[K, T]) findAll(specs ...specification.Specification[*T]) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.order))
	for _, k := range s.order {
		row := s.rows[k]
		if specification.SatisfiesAll(&row, specs...) {
			out = append(out, &row)
		}
	}
	return out
}

func (s *store[K, T]) findOne(specs ...specification.Specification[*T]) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.order {
		row := s.rows[k]
		if specification.SatisfiesAll(&row, specs...) {
			return &row
		}
	}
	return nil
}

func (s *store[K, T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
