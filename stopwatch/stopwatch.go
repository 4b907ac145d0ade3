// Package stopwatch provides concurrency-safe lap timers and a registry that
// hands them out under unique identifiers. Stopwatches are created through a
// Registry and may then be shared freely between goroutines; every operation
// is safe to call concurrently with every other.
package stopwatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Stopwatch is a named lap timer. It is either idle or running: Start moves
// it to running, Lap records the time since the previous boundary (start or
// prior lap), Stop records one final lap and returns it to idle, and Reset
// discards everything. Obtain instances from Registry.Create.
type Stopwatch struct {
	id  string
	clk clock.Clock

	mu        sync.Mutex
	running   bool
	startedAt time.Time
	lastLap   time.Time
	laps      []time.Duration
}

func newStopwatch(id string, clk clock.Clock) *Stopwatch {
	return &Stopwatch{id: id, clk: clk}
}

// ID returns the immutable identifier the stopwatch was registered under.
func (s *Stopwatch) ID() string {
	return s.id
}

// Start begins a timing session. It returns ErrAlreadyRunning if the
// stopwatch is already running.
func (s *Stopwatch) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("stopwatch %q: %w", s.id, ErrAlreadyRunning)
	}

	now := s.clk.Now()
	s.running = true
	s.startedAt = now
	s.lastLap = now
	return nil
}

// Lap records the time elapsed since the previous lap boundary (the start
// instant for the first lap) and begins a new lap. It returns ErrNotRunning
// if the stopwatch is idle.
func (s *Stopwatch) Lap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("stopwatch %q: %w", s.id, ErrNotRunning)
	}

	s.recordLap()
	return nil
}

// Stop records one final lap, exactly as Lap would, and returns the
// stopwatch to idle so that no time between the last lap and the stop call
// is lost. It returns ErrNotRunning if the stopwatch is idle.
func (s *Stopwatch) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("stopwatch %q: %w", s.id, ErrNotRunning)
	}

	s.recordLap()
	s.running = false
	return nil
}

// recordLap appends the duration since the previous boundary and advances it.
// Caller must hold s.mu.
func (s *Stopwatch) recordLap() {
	now := s.clk.Now()
	s.laps = append(s.laps, now.Sub(s.lastLap))
	s.lastLap = now
}

// Reset returns the stopwatch to idle and clears all recorded laps. It never
// fails and is safe to call in any state; resetting a running stopwatch
// silently stops it.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.startedAt = time.Time{}
	s.lastLap = time.Time{}
	s.laps = nil
}

// LapTimes returns an independent snapshot of the recorded lap durations in
// the order they were recorded. Later operations on the stopwatch never
// affect a previously returned snapshot, and vice versa.
func (s *Stopwatch) LapTimes() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	laps := make([]time.Duration, len(s.laps))
	copy(laps, s.laps)
	return laps
}

// Running reports whether the stopwatch is currently timing.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the time since Start while the stopwatch is running, and
// zero while it is idle.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return 0
	}
	return s.clk.Now().Sub(s.startedAt)
}

// String returns a short human-readable summary of the stopwatch.
func (s *Stopwatch) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := "idle"
	if s.running {
		state = "running"
	}
	return fmt.Sprintf("%s: %s, %d laps", s.id, state, len(s.laps))
}
