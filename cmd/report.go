package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/activerecon/activerecon/recon/trace"
)

// printSummary writes the run summary to w: a header line followed by indented JSON.
func printSummary(w io.Writer, summary *trace.RunSummary, delivered int, wall time.Duration) {
	report := struct {
		*trace.RunSummary
		CloudsDelivered int     `json:"clouds_delivered"`
		WallClockS      float64 `json:"wall_clock_s"`
	}{
		RunSummary:      summary,
		CloudsDelivered: delivered,
		WallClockS:      wall.Seconds(),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "failed to marshal summary: %v\n", err)
		return
	}
	fmt.Fprintln(w, "=== Reconstruction Summary ===")
	fmt.Fprintln(w, string(data))
}

// saveTrace writes rt as indented JSON to path.
func saveTrace(path string, rt *trace.RunTrace) error {
	data, err := json.MarshalIndent(rt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace %s: %w", path, err)
	}
	return nil
}
