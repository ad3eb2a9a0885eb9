package auth

import "sync"

// Listener is told when a user signs in (signedIn true) or out.
type Listener func(userID string, signedIn bool)

// Events fans sign-in and sign-out out to listeners, synchronously and in
// registration order.
type Events struct {
	mu        sync.RWMutex
	next      int
	listeners []registered
}

type registered struct {
	id int
	fn Listener
}

func NewEvents() *Events {
	return &Events{}
}

// Subscribe registers fn and returns a function that removes it.
func (e *Events) Subscribe(fn Listener) (unsubscribe func()) {
	e.mu.Lock()
	e.next++
	id := e.next
	e.listeners = append(e.listeners, registered{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, l := range e.listeners {
				if l.id == id {
					e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (e *Events) SignedIn(userID string) {
	e.notify(userID, true)
}

func (e *Events) SignedOut(userID string) {
	e.notify(userID, false)
}

func (e *Events) notify(userID string, signedIn bool) {
	e.mu.RLock()
	listeners := make([]Listener, len(e.listeners))
	for i, l := range e.listeners {
		listeners[i] = l.fn
	}
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(userID, signedIn)
	}
}
