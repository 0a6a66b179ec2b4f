package filterstate

import "sync"

// Listener receives the current filter mapping after every change
type Listener func(filter map[string]string)

// ListenerID identifies a registered listener
type ListenerID uint64

type registration struct {
	id ListenerID
	fn Listener
}

// Listeners is a registry of change callbacks invoked in registration order
type Listeners struct {
	mu      sync.Mutex
	nextID  ListenerID
	entries []registration
}

// NewListeners creates an empty registry
func NewListeners() *Listeners {
	return &Listeners{}
}

// Register adds fn and returns the handle used to remove it
func (l *Listeners) Register(fn Listener) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.entries = append(l.entries, registration{id: l.nextID, fn: fn})
	return l.nextID
}

// Unregister removes the listener with the given handle
func (l *Listeners) Unregister(id ListenerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Notify calls every listener synchronously with its own copy of filter.
// A panicking listener is not recovered and stops the remaining calls.
func (l *Listeners) Notify(filter map[string]string) {
	l.mu.Lock()
	entries := make([]registration, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	for _, e := range entries {
		if e.fn != nil {
			e.fn(copyMap(filter))
		}
	}
}
