package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "sift.dev/pkg/sift/internal/model"
)

func TestPlanItem(t *testing.T) {
	item := planItem{entry: m.PlanEntry{
		ID:         "ab12cd340",
		File:       "/specs/auth.yaml",
		FullTitle:  "auth signs in",
		Pending:    true,
		SkipReason: "flaky",
	}}

	assert.Contains(t, item.Title(), "skipped")
	assert.Contains(t, item.Title(), "auth signs in")
	assert.Contains(t, item.Description(), "ab12cd340")
	assert.Contains(t, item.Description(), "/specs/auth.yaml")
	assert.Contains(t, item.Description(), "(flaky)")
	assert.Equal(t, "auth signs in", item.FilterValue())
}

func TestPlanItem_NoReason(t *testing.T) {
	item := planItem{entry: m.PlanEntry{ID: "aa0", File: "/specs/auth.yaml", FullTitle: "auth signs in"}}

	assert.Contains(t, item.Title(), "runnable")
	assert.NotContains(t, item.Description(), "(")
}

func TestNewPlanModel(t *testing.T) {
	model := newPlanModel("chrome", sampleEntries())

	assert.Equal(t, "chrome: 1 runnable, 1 skipped, 1 excluded", model.list.Title)
	assert.Len(t, model.list.Items(), 3)
	assert.Nil(t, model.Init())
}

func TestPlanModel_QuitKeys(t *testing.T) {
	model := newPlanModel("chrome", sampleEntries())

	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := model.Update(keyMsg(t, key))
		require.NotNil(t, cmd, key)
		assert.IsType(t, tea.QuitMsg{}, cmd(), key)
	}
}

func TestPlanModel_Resize(t *testing.T) {
	model := newPlanModel("chrome", sampleEntries())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	resized, ok := updated.(planModel)
	require.True(t, ok)

	h, v := appStyle.GetFrameSize()
	assert.Equal(t, 120-h, resized.list.Width())
	assert.Equal(t, 40-v, resized.list.Height())
}

func keyMsg(t *testing.T, key string) tea.KeyMsg {
	t.Helper()

	switch key {
	case "q":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		t.Fatalf("unknown key %q", key)
		return tea.KeyMsg{}
	}
}
