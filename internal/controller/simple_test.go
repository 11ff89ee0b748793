package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "sift.dev/pkg/sift/internal/model"
)

func sampleEntries() []m.PlanEntry {
	return []m.PlanEntry{
		{ID: "aa0", File: "/specs/auth.yaml", FullTitle: "auth signs in"},
		{ID: "aa1", File: "/specs/auth.yaml", FullTitle: "auth rejects", Pending: true, SkipReason: "flaky"},
		{ID: "bb0", File: "/specs/search.yaml", FullTitle: "finds products", Pending: true, SilentSkip: true},
	}
}

func newBufferedCmd() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)

	return cmd, out
}

func TestSimpleUI_DisplayPlan(t *testing.T) {
	cmd, out := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplayPlan(context.Background(), "chrome", sampleEntries())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "auth signs in")
	assert.Contains(t, out.String(), "runnable")
	assert.Contains(t, out.String(), "skipped")
	assert.Contains(t, out.String(), "excluded")
	assert.Contains(t, out.String(), "flaky")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	cmd, out := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	ui.DisplaySummary(context.Background(), "chrome", sampleEntries())

	assert.Contains(t, out.String(), "chrome: 3 tests (1 runnable, 1 skipped, 1 excluded)")
}

func TestSimpleUI_DisplayFiles(t *testing.T) {
	cmd, out := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplayFiles(context.Background(), sampleEntries())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "/specs/auth.yaml")
	assert.Contains(t, out.String(), "/specs/search.yaml")
	assert.Contains(t, strings.ToUpper(out.String()), "TOTAL FILES 2")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, out := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.DisplayPlan(ctx, "chrome", sampleEntries()))
	ui.DisplaySummary(ctx, "chrome", sampleEntries())
	assert.Empty(t, out.String())
}

func TestCountByStatus(t *testing.T) {
	runnable, skipped, excluded := countByStatus(sampleEntries())

	assert.Equal(t, 1, runnable)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, excluded)
}
