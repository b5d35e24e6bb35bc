package orchestrator

import (
	"time"

	"prefixsub/internal/organizer"
)

// RunSummary contains statistics from a run.
type RunSummary struct {
	DryRun   bool
	Groups   int            // Prefix groups that were reorganized
	Planned  int            // Moves computed during a dry run
	Moved    int            // Files now in their prefix directory
	Failed   int            // Files left in place after a failed move
	InPlace  int            // Files whose destination is where they already are
	Duration time.Duration  // Total processing time
	ByPrefix map[string]int // Per-prefix file counts (only populated in verbose mode)
}

// HasFailures reports whether any file could not be moved.
func (s *RunSummary) HasFailures() bool {
	return s != nil && s.Failed > 0
}

// GenerateSummary creates a summary from a run report.
// A nil report, as returned by a run that failed before reorganizing, yields
// zero counts.
func GenerateSummary(report *organizer.Report, duration time.Duration, verbose bool) *RunSummary {
	if report == nil {
		return &RunSummary{Duration: duration}
	}

	summary := &RunSummary{
		DryRun:   report.DryRun,
		Groups:   len(report.Groups),
		Planned:  report.Count(organizer.StatusPlanned),
		Moved:    report.Count(organizer.StatusMoved),
		Failed:   report.Count(organizer.StatusFailed),
		InPlace:  report.Count(organizer.StatusInPlace),
		Duration: duration,
	}

	if verbose {
		summary.ByPrefix = make(map[string]int, len(report.Groups))
		for _, g := range report.Groups {
			summary.ByPrefix[g.Prefix] += len(g.Moves)
		}
	}

	return summary
}
