package events

import "portfolio-globe/internal/catalog"

// Topic is a synchronous, single-threaded publish/subscribe channel for one message type.
// Handlers run in subscription order on the publishing goroutine (the frame loop).
type Topic[T any] struct {
	next     int
	handlers []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.next++
	id := t.next
	t.handlers = append(t.handlers, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range t.handlers {
			if s.id == id {
				t.handlers = append(t.handlers[:i:i], t.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to every handler subscribed at the time of the call.
func (t *Topic[T]) Publish(v T) {
	hs := t.handlers
	for _, s := range hs {
		s.fn(v)
	}
}

// Len returns the number of active subscriptions.
func (t *Topic[T]) Len() int {
	return len(t.handlers)
}

// MarkerActivated is published when a globe marker (or grid icon) is clicked.
type MarkerActivated struct {
	Project catalog.Project
}

// ModalClosed is published when the detail panel is dismissed.
type ModalClosed struct {
	ProjectID int
}

// LayoutChanged is published when the grid switches filter.
type LayoutChanged struct {
	Filter string
	Globe  bool
}

// Bus groups the topics shared by the globe, the modal controller and the grid.
type Bus struct {
	MarkerActivated Topic[MarkerActivated]
	ModalClosed     Topic[ModalClosed]
	LayoutChanged   Topic[LayoutChanged]
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}
