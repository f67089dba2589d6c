package store

import (
	"github.com/mitchellh/hashstructure/v2"
)

// Subscribe registers fn for actions touching any slice in mask. The
// returned func unsubscribes and is safe to call more than once.
func (s *Store[T]) Subscribe(mask Slice, fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener{mask: mask, fn: fn}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

type watcher[T any] struct {
	selector func(State[T]) any
	fn       func(any)
	hash     uint64
	ok       bool
}

// Watch calls fn with the selected value whenever an action changes it.
// Selections are compared by structural hash; a value that cannot be hashed
// is treated as changed.
func (s *Store[T]) Watch(selector func(State[T]) any, fn func(any)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	w := &watcher[T]{selector: selector, fn: fn}
	w.hash, w.ok = hashOf(selector(s.state))
	id := s.nextListener
	s.nextListener++
	s.watchers[id] = w
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

// pendingWatchers evaluates selectors under the lock and returns the calls
// to make once it is released.
func (s *Store[T]) pendingWatchers() func() {
	if len(s.watchers) == 0 {
		return func() {}
	}
	type call struct {
		fn func(any)
		v  any
	}
	var calls []call
	for _, w := range s.watchers {
		v := w.selector(s.state)
		h, ok := hashOf(v)
		if ok && w.ok && h == w.hash {
			continue
		}
		w.hash, w.ok = h, ok
		calls = append(calls, call{fn: w.fn, v: v})
	}
	return func() {
		for _, c := range calls {
			c.fn(c.v)
		}
	}
}

func hashOf(v any) (uint64, bool) {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, false
	}
	return h, true
}
