package stopwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry()

	sw, err := reg.Create("a")
	require.NoError(t, err)
	require.NotNil(t, sw)
	assert.Equal(t, "a", sw.ID())
	assert.False(t, sw.Running())
}

func TestRegistryCreateEmptyID(t *testing.T) {
	reg := NewRegistry()

	sw, err := reg.Create("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.Nil(t, sw)

	// An empty id must be rejected regardless of prior state.
	_, err = reg.Create("a")
	require.NoError(t, err)
	_, err = reg.Create("")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestRegistryCreateDuplicateID(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.Create("a")
	require.NoError(t, err)

	second, err := reg.Create("a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Nil(t, second)

	// The original stopwatch is untouched by the failed attempt.
	got, ok := reg.Get("a")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Get("missing")
	assert.False(t, ok)

	created, err := reg.Create("a")
	require.NoError(t, err)

	got, ok := reg.Get("a")
	require.True(t, ok)
	assert.Same(t, created, got)
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry()

	assert.Empty(t, reg.List())

	for _, id := range []string{"a", "b", "c"} {
		_, err := reg.Create(id)
		require.NoError(t, err)
	}

	listed := reg.List()
	require.Len(t, listed, 3)

	ids := make(map[string]bool, len(listed))
	for _, sw := range listed {
		ids[sw.ID()] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, ids)
}

func TestRegistryListSnapshotIndependence(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Create("a")
	require.NoError(t, err)

	listed := reg.List()
	require.Len(t, listed, 1)

	// A later create must not grow a previously returned snapshot, and
	// clobbering the snapshot must not reach the registry.
	_, err = reg.Create("b")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	listed[0] = nil
	got, ok := reg.Get("a")
	require.True(t, ok)
	assert.NotNil(t, got)
}

func TestRegistryLen(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 0, reg.Len())

	_, err := reg.Create("a")
	require.NoError(t, err)
	_, err = reg.Create("b")
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
}
