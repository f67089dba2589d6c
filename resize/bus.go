package resize

import "sync"

type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerUp
)

// PointerEvent is a pointer movement or release in grid coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// Bus fans pointer events out to the active drag sessions. The grid
// publishes every mouse motion and release it receives, wherever the
// pointer is.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(PointerEvent)
}

func NewBus() *Bus {
	return &Bus{subs: map[int]func(PointerEvent){}}
}

// Subscribe adds fn. The returned func removes it and may be called from
// within fn.
func (b *Bus) Subscribe(fn func(PointerEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers ev to every subscriber. It reports whether anyone was
// listening.
func (b *Bus) Publish(ev PointerEvent) bool {
	b.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
	return len(fns) > 0
}

// Len is the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
