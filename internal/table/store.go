package table

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateID indicates an append reused an id already in the store.
	// It points at a broken id generator and is never expected at runtime.
	ErrDuplicateID = errors.New("table: duplicate record id")
	// ErrMissingID indicates an append of a record without an id.
	ErrMissingID = errors.New("table: record id required")
)

// Cloner is implemented by records holding slices or maps. The store copies
// such records on the way in and out so callers never share their contents.
type Cloner[T any] interface {
	Clone() T
}

func cloneRecord[T any](rec T) T {
	if c, ok := any(rec).(Cloner[T]); ok {
		return c.Clone()
	}
	return rec
}

// Store is an in-memory ordered collection of records keyed by id.
// Insertion order is preserved; display sorting never reorders the store.
type Store[T Record] struct {
	records []T
	ids     map[string]struct{}
}

// NewStore builds a store holding seed in order.
func NewStore[T Record](seed ...T) (*Store[T], error) {
	s := &Store[T]{
		records: make([]T, 0, len(seed)),
		ids:     make(map[string]struct{}, len(seed)),
	}
	for _, rec := range seed {
		if err := s.Append(rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append inserts rec at the end.
func (s *Store[T]) Append(rec T) error {
	id := rec.RecordID()
	if id == "" {
		return ErrMissingID
	}
	if _, exists := s.ids[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	s.records = append(s.records, cloneRecord(rec))
	s.ids[id] = struct{}{}
	return nil
}

// RemoveByID removes the record with id and reports whether one was removed.
// Removing an absent id is a no-op.
func (s *Store[T]) RemoveByID(id string) bool {
	if _, exists := s.ids[id]; !exists {
		return false
	}
	idx := slices.IndexFunc(s.records, func(rec T) bool { return rec.RecordID() == id })
	if idx < 0 {
		return false
	}
	s.records = slices.Delete(s.records, idx, idx+1)
	delete(s.ids, id)
	return true
}

// Get looks up a record by id.
func (s *Store[T]) Get(id string) (T, bool) {
	var zero T
	if _, exists := s.ids[id]; !exists {
		return zero, false
	}
	for _, rec := range s.records {
		if rec.RecordID() == id {
			return cloneRecord(rec), true
		}
	}
	return zero, false
}

// All returns a snapshot of the records in store order.
func (s *Store[T]) All() []T {
	out := make([]T, len(s.records))
	for i, rec := range s.records {
		out[i] = cloneRecord(rec)
	}
	return out
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.records)
}
