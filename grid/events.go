package grid

import "github.com/iw2rmb/frametable/store"

// EditEvent is emitted when an editor saves a value. The grid does not write
// the value back: the host updates its data and calls SetData.
type EditEvent[T any] struct {
	Row    int
	Column int
	Key    store.Key
	Item   store.DataItem[T]
	// Previous is the value the editor was opened with.
	Previous any
	Value    any
}

// FocusEvent reports the focused cell after it moved.
type FocusEvent struct {
	Row    int
	Column int
}
