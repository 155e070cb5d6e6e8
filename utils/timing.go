package utils

import (
	"fmt"
	"time"
)

// TimingStats holds timing information for different operations
type TimingStats struct {
	TotalTime           time.Duration
	DataLoadingTime     time.Duration
	ModelInitTime       time.Duration
	ForwardPassTime     time.Duration
	BackwardPassTime    time.Duration
	UpdateTime          time.Duration
	LossComputationTime time.Duration
}

func percent(part, whole time.Duration) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats, steps int) {
	if !Verbose || steps <= 0 {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total training time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Average time per step: %v\n", stats.TotalTime/time.Duration(steps))
	fmt.Fprintf(Output, "Steps completed: %d\n", steps)
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Data loading: %v (%.1f%%)\n", stats.DataLoadingTime, percent(stats.DataLoadingTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Model initialization: %v (%.1f%%)\n", stats.ModelInitTime, percent(stats.ModelInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Forward pass: %v (%.1f%%)\n", stats.ForwardPassTime, percent(stats.ForwardPassTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Backward pass: %v (%.1f%%)\n", stats.BackwardPassTime, percent(stats.BackwardPassTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Weight updates: %v (%.1f%%)\n", stats.UpdateTime, percent(stats.UpdateTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Loss computation: %v (%.1f%%)\n", stats.LossComputationTime, percent(stats.LossComputationTime, stats.TotalTime))
	fmt.Fprintln(Output, "\nPerformance metrics:")
	fmt.Fprintf(Output, "  Average forward pass time: %v\n", stats.ForwardPassTime/time.Duration(steps))
	fmt.Fprintf(Output, "  Average backward pass time: %v\n", stats.BackwardPassTime/time.Duration(steps))
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
