package cmd

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lapse/internal/report"
	"github.com/MeKo-Tech/lapse/stopwatch"
)

// demoCmd represents the demo command.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a concurrent workload against shared stopwatches",
	Long: `Run a workload where multiple workers concurrently record laps on a
set of shared stopwatches, then print a report of every stopwatch.

Each worker records the configured number of laps, cycling through the
stopwatches, so every stopwatch ends up timed by several goroutines at once.

Examples:
  lapse demo
  lapse demo --watches 5 --workers 16 --laps 20
  lapse demo --format yaml`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("watches", 0, "number of stopwatches to create (default from config)")
	demoCmd.Flags().Int("workers", 0, "number of concurrent workers (default from config)")
	demoCmd.Flags().Int("laps", 0, "laps recorded per worker (default from config)")
	demoCmd.Flags().Int("interval", -1, "pause between laps in milliseconds (default from config)")
	demoCmd.Flags().StringP("format", "f", "", "output format: text, json, or yaml (default from config)")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	watches := cfg.Demo.Watches
	if cmd.Flags().Changed("watches") {
		watches, _ = cmd.Flags().GetInt("watches")
	}
	workers := cfg.Demo.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	laps := cfg.Demo.Laps
	if cmd.Flags().Changed("laps") {
		laps, _ = cmd.Flags().GetInt("laps")
	}
	intervalMS := cfg.Demo.IntervalMS
	if cmd.Flags().Changed("interval") {
		intervalMS, _ = cmd.Flags().GetInt("interval")
	}
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	if watches <= 0 || workers <= 0 || laps <= 0 || intervalMS < 0 {
		return fmt.Errorf("watches, workers, and laps must be positive and interval must not be negative")
	}

	reg := stopwatch.NewRegistry()
	all := make([]*stopwatch.Stopwatch, watches)
	for i := range all {
		sw, err := reg.Create(fmt.Sprintf("watch-%d", i+1))
		if err != nil {
			return fmt.Errorf("failed to create stopwatch: %w", err)
		}
		if err := sw.Start(); err != nil {
			return fmt.Errorf("failed to start stopwatch: %w", err)
		}
		all[i] = sw
	}

	slog.Info("Starting demo workload",
		"watches", watches, "workers", workers, "laps", laps, "interval_ms", intervalMS)

	interval := time.Duration(intervalMS) * time.Millisecond
	began := time.Now()

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range laps {
				time.Sleep(interval)
				// Workers fan out over the stopwatches so each one is
				// hit by several goroutines concurrently.
				sw := all[(w+l)%len(all)]
				if err := sw.Lap(); err != nil {
					slog.Warn("Lap failed", "id", sw.ID(), "error", err)
				}
			}
		}()
	}
	wg.Wait()

	for _, sw := range all {
		if err := sw.Stop(); err != nil {
			return fmt.Errorf("failed to stop stopwatch %s: %w", sw.ID(), err)
		}
	}

	slog.Info("Demo workload finished",
		"duration", time.Since(began).String(), "total_laps", workers*laps+watches)

	out, err := report.Format(report.CaptureAll(reg), format)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
