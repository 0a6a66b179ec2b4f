package filterstate

import (
	"context"
	"sync"

	"github.com/alertmgr/backend/pkg/models"
)

// Tracker owns a State and notifies its listeners after every change
type Tracker struct {
	mu        sync.RWMutex
	state     State
	listeners *Listeners
}

// NewTracker creates a Tracker starting at s
func NewTracker(s State) *Tracker {
	return &Tracker{state: s, listeners: NewListeners()}
}

// State returns the tracked value
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Listeners exposes the registry notified on change
func (t *Tracker) Listeners() *Listeners {
	return t.listeners
}

// ApplyExternalChange replaces the current filters with those in rawURL and notifies
func (t *Tracker) ApplyExternalChange(rawURL string) error {
	t.mu.Lock()
	next, err := t.state.WithExternalChange(rawURL)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	t.state = next
	t.mu.Unlock()

	t.listeners.Notify(next.current)
	return nil
}

// Reset restores the initial filters and notifies
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.state = t.state.Reset()
	current := t.state.current
	t.mu.Unlock()

	t.listeners.Notify(current)
}

// Save persists alert in place. On success the initial snapshot becomes the
// saved filters; changes applied while the save ran stay current and dirty.
func (t *Tracker) Save(ctx context.Context, updater AlertUpdater, alert models.Alert) SaveResult {
	saved, result := t.State().Save(ctx, updater, alert)
	if result.Success {
		t.mu.Lock()
		t.state = State{current: t.state.current, initial: copyMap(saved.current)}
		t.mu.Unlock()
	}
	return result
}

// CopyAndSave persists a copy of alert with the current filters
func (t *Tracker) CopyAndSave(ctx context.Context, creator AlertCreator, alert models.Alert, currentUserEmail string) SaveResult {
	return t.State().CopyAndSave(ctx, creator, alert, currentUserEmail)
}
