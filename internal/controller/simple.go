package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "sift.dev/pkg/sift/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayPlan prints the compiled plan as a table, one row per test.
func (s *SimpleUI) DisplayPlan(ctx context.Context, browserID string, entries []m.PlanEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanTable(browserID, entries))

	return nil
}

// DisplaySummary prints one line of selection counts for a browser.
func (s *SimpleUI) DisplaySummary(ctx context.Context, browserID string, entries []m.PlanEntry) {
	if err := ctx.Err(); err != nil {
		return
	}

	runnable, skipped, excluded := countByStatus(entries)
	s.printf("%s: %d tests (%d runnable, %d skipped, %d excluded)\n",
		browserID, len(entries), runnable, skipped, excluded)
}

// DisplayError prints a compilation error.
func (s *SimpleUI) DisplayError(ctx context.Context, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("compile error: %v\n", err)
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}

type fileStat struct {
	file  string
	tests int
}

// buildFileStats groups plan entries by definition file.
func buildFileStats(entries []m.PlanEntry) []fileStat {
	info := make(map[string]int)

	for _, entry := range entries {
		info[string(entry.File)]++
	}

	statsList := make([]fileStat, 0, len(info))
	for file, tests := range info {
		statsList = append(statsList, fileStat{file: file, tests: tests})
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].file < statsList[j].file
	})

	return statsList
}

func renderPlanTable(browserID string, entries []m.PlanEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Status", "ID", "Title", "Reason"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	runnable, skipped, excluded := countByStatus(entries)

	for _, entry := range entries {
		table.Append([]string{entry.Status(), entry.ID, entry.FullTitle, entry.SkipReason})
	}

	table.SetFooter([]string{
		browserID,
		fmt.Sprintf("%d tests", len(entries)),
		fmt.Sprintf("%d runnable", runnable),
		fmt.Sprintf("%d skipped / %d excluded", skipped, excluded),
	})

	table.Render()

	return tableBuffer.String()
}

// renderFileTable lists definition files with their test counts.
func renderFileTable(entries []m.PlanEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Tests"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	statsList := buildFileStats(entries)
	for _, stat := range statsList {
		table.Append([]string{stat.file, fmt.Sprintf("%d", stat.tests)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(statsList)),
		fmt.Sprintf("%d", len(entries)),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayFiles prints the per-file test counts table.
func (s *SimpleUI) DisplayFiles(ctx context.Context, entries []m.PlanEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderFileTable(entries))

	return nil
}
