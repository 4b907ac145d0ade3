package stopwatch

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentLapsLoseNothing(t *testing.T) {
	const goroutines = 64

	reg := NewRegistry()
	sw, err := reg.Create("shared")
	require.NoError(t, err)
	require.NoError(t, sw.Start())

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, sw.Lap())
		}()
	}
	close(start)
	wg.Wait()

	laps := sw.LapTimes()
	require.Len(t, laps, goroutines)
	for _, lap := range laps {
		assert.GreaterOrEqual(t, lap, time.Duration(0))
	}
}

func TestConcurrentCreateSameID(t *testing.T) {
	const attempts = 32

	reg := NewRegistry()

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	start := make(chan struct{})
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := reg.Create("contested")
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateID)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)
	assert.Equal(t, 1, reg.Len())
}

func TestConcurrentCreateDistinctIDs(t *testing.T) {
	const creators = 50

	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := range creators {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Create(fmt.Sprintf("watch-%d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, creators, reg.Len())
	assert.Len(t, reg.List(), creators)
}

// TestConcurrentReadersAndWriters hammers every operation at once; the race
// detector and the per-snapshot length checks catch torn state.
func TestConcurrentReadersAndWriters(t *testing.T) {
	reg := NewRegistry()
	sw, err := reg.Create("shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				// Interleave every transition; state errors are expected.
				_ = sw.Start()
				_ = sw.Lap()
				_ = sw.Stop()
				sw.Reset()
			}
		}()
	}

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				for _, lap := range sw.LapTimes() {
					assert.GreaterOrEqual(t, lap, time.Duration(0))
				}
				_ = sw.Running()
				_ = sw.Elapsed()
				_ = sw.String()
				assert.Equal(t, "shared", sw.ID())
				_ = reg.List()
			}
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(done)
	wg.Wait()
}
