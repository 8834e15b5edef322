// Package orderedset provides a set that preserves first-insertion order.
//
// Report tables collect row keys (metric indices, preprocessing step names)
// from several series in arrival order: the first series to mention a key
// fixes its position, later mentions are ignored. Membership checks are O(1).
package orderedset

// Set is an insertion-ordered set. The zero value is not usable; call New.
type Set[T comparable] struct {
	seen  map[T]struct{}
	order []T
}

// New returns an empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{seen: make(map[T]struct{})}
}

// Add inserts v if it has not been seen before. It reports whether the
// value was inserted; a duplicate keeps its original position.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// AddAll inserts each value in order.
func (s *Set[T]) AddAll(vs ...T) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.seen[v]
	return ok
}

// Values returns the members in first-insertion order. The returned slice
// is owned by the set and must not be modified.
func (s *Set[T]) Values() []T {
	return s.order
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.order)
}
