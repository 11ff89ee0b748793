// Package controller provides output adapters for displaying compiled plans.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	m "sift.dev/pkg/sift/internal/model"
)

// UI defines the interface for displaying compiled test plans.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayPlan(ctx context.Context, browserID string, entries []m.PlanEntry) error
	DisplayFiles(ctx context.Context, entries []m.PlanEntry) error
	DisplaySummary(ctx context.Context, browserID string, entries []m.PlanEntry)
	DisplayError(ctx context.Context, err error)
}

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// countByStatus tallies entries into runnable/skipped/excluded buckets.
func countByStatus(entries []m.PlanEntry) (runnable, skipped, excluded int) {
	for _, e := range entries {
		switch {
		case e.SilentSkip:
			excluded++
		case e.Pending:
			skipped++
		default:
			runnable++
		}
	}

	return runnable, skipped, excluded
}
