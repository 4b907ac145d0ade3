package stopwatch

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
)

// Registry owns a set of stopwatches keyed by unique identifiers. It is safe
// for concurrent use; when two goroutines race to create the same identifier,
// exactly one wins and the other observes ErrDuplicateID.
//
// A Registry is an ordinary value owned by the host application. There is no
// package-level instance.
type Registry struct {
	clk clock.Clock

	mu      sync.RWMutex
	entries map[string]*Stopwatch
	order   []*Stopwatch
}

// NewRegistry creates an empty registry backed by the system clock.
func NewRegistry() *Registry {
	return NewRegistryWithClock(clock.New())
}

// NewRegistryWithClock creates an empty registry whose stopwatches read time
// from clk. Tests pass clock.NewMock() to drive deterministic instants.
func NewRegistryWithClock(clk clock.Clock) *Registry {
	return &Registry{
		clk:     clk,
		entries: make(map[string]*Stopwatch),
	}
}

// Create registers and returns a new idle stopwatch under id. It returns
// ErrEmptyID when id is empty and ErrDuplicateID when id is already taken.
// The existence check and the insertion happen under one lock, so concurrent
// Create calls on the same id yield exactly one stopwatch.
func (r *Registry) Create(id string) (*Stopwatch, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}

	s := newStopwatch(id, r.clk)
	r.entries[id] = s
	r.order = append(r.order, s)
	return s, nil
}

// Get returns the stopwatch registered under id, if any.
func (r *Registry) Get(id string) (*Stopwatch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.entries[id]
	return s, ok
}

// List returns an independent snapshot of all registered stopwatches.
// Creation order is preserved, but callers must not rely on it.
func (r *Registry) List() []*Stopwatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Stopwatch, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered stopwatches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
