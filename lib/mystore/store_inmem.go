package mystore

import (
	"context"
	"maps"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	return c.Value(ctxTransactionKey{store: s}) != nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if s.inTransaction(c) {
		// Already inside: join the running transaction
		return f(c)
	}

	// Start transaction
	s.Lock()
	defer s.Unlock()

	snapshot := maps.Clone(s.items)

	// Within this block everything is transactional
	err := f(context.WithValue(c, ctxTransactionKey{store: s}, true))
	if err != nil {
		// Rollback
		s.items = snapshot

		return err
	}

	// Commit
	return nil
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	s.items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) GetMulti(c context.Context, uids []string) (map[string]T, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	result := make(map[string]T, len(uids))
	for _, uid := range uids {
		if value, exists := s.items[uid]; exists {
			result[uid] = value
		}
	}

	return result, nil
}
