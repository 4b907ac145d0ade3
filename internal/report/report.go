// Package report renders read-only snapshots of stopwatches for presentation.
// It consumes only the snapshot accessors of the core library and performs no
// mutation of its own.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/lapse/stopwatch"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Snapshot is a point-in-time view of one stopwatch. Lap durations are
// reported in milliseconds.
type Snapshot struct {
	ID      string    `json:"id" yaml:"id"`
	Running bool      `json:"running" yaml:"running"`
	Laps    []float64 `json:"laps_ms" yaml:"laps_ms"`
	TotalMS float64   `json:"total_ms" yaml:"total_ms"`
}

// Capture takes a snapshot of a single stopwatch.
func Capture(sw *stopwatch.Stopwatch) Snapshot {
	laps := sw.LapTimes()
	lapsMS := make([]float64, len(laps))
	var total time.Duration
	for i, lap := range laps {
		lapsMS[i] = toMillis(lap)
		total += lap
	}
	return Snapshot{
		ID:      sw.ID(),
		Running: sw.Running(),
		Laps:    lapsMS,
		TotalMS: toMillis(total),
	}
}

// CaptureAll snapshots every stopwatch in the registry.
func CaptureAll(reg *stopwatch.Registry) []Snapshot {
	watches := reg.List()
	snapshots := make([]Snapshot, len(watches))
	for i, sw := range watches {
		snapshots[i] = Capture(sw)
	}
	return snapshots
}

// Format renders snapshots in the requested format.
func Format(snapshots []Snapshot, format string) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(snapshots)
	case FormatYAML:
		return formatYAML(snapshots)
	case FormatText, "":
		return formatText(snapshots), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
}

func formatJSON(snapshots []Snapshot) (string, error) {
	doc := struct {
		Stopwatches []Snapshot `json:"stopwatches"`
		Count       int        `json:"count"`
	}{
		Stopwatches: snapshots,
		Count:       len(snapshots),
	}
	bts, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding report as JSON: %w", err)
	}
	return string(bts), nil
}

func formatYAML(snapshots []Snapshot) (string, error) {
	doc := struct {
		Stopwatches []Snapshot `yaml:"stopwatches"`
		Count       int        `yaml:"count"`
	}{
		Stopwatches: snapshots,
		Count:       len(snapshots),
	}
	bts, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("error encoding report as YAML: %w", err)
	}
	return string(bts), nil
}

func formatText(snapshots []Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-20s %-8s %6s %12s\n", "ID", "STATE", "LAPS", "TOTAL"))
	for _, snap := range snapshots {
		state := "idle"
		if snap.Running {
			state = "running"
		}
		b.WriteString(fmt.Sprintf("%-20s %-8s %6d %10.1fms\n",
			snap.ID, state, len(snap.Laps), snap.TotalMS))
	}
	b.WriteString(fmt.Sprintf("%d stopwatches\n", len(snapshots)))
	return b.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
