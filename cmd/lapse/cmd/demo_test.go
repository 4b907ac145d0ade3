package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDemoCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := rootCmd
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"demo"}, args...))

	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestDemoCommandText(t *testing.T) {
	output := runDemoCommand(t, "--watches", "2", "--workers", "3", "--laps", "2", "--interval", "0")

	assert.Contains(t, output, "watch-1")
	assert.Contains(t, output, "watch-2")
	assert.Contains(t, output, "2 stopwatches")
}

func TestDemoCommandJSON(t *testing.T) {
	output := runDemoCommand(t,
		"--watches", "2", "--workers", "4", "--laps", "3", "--interval", "0",
		"--format", "json")

	var doc struct {
		Stopwatches []struct {
			ID      string    `json:"id"`
			Running bool      `json:"running"`
			Laps    []float64 `json:"laps_ms"`
		} `json:"stopwatches"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &doc))
	require.Equal(t, 2, doc.Count)

	// 4 workers * 3 laps spread over the watches, plus one final lap each
	// from Stop.
	totalLaps := 0
	for _, sw := range doc.Stopwatches {
		assert.False(t, sw.Running)
		totalLaps += len(sw.Laps)
	}
	assert.Equal(t, 4*3+2, totalLaps)
}

func TestDemoCommandRejectsBadFlags(t *testing.T) {
	cmd := rootCmd
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"demo", "--watches", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}
