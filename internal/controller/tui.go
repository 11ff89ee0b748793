package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "sift.dev/pkg/sift/internal/model"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	runnableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TUI implements an interactive compiled-plan browser using Bubble Tea.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Browse opens the plan in an interactive, filterable list. It blocks until
// the user quits.
func (p *TUI) Browse(browserID string, entries []m.PlanEntry) error {
	program := tea.NewProgram(
		newPlanModel(browserID, entries),
		tea.WithOutput(p.output),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("plan browser failed: %w", err)
	}

	return nil
}

type planItem struct {
	entry m.PlanEntry
}

// Title implements list.DefaultItem.
func (i planItem) Title() string {
	status := i.entry.Status()

	switch {
	case i.entry.SilentSkip:
		status = excludedStyle.Render(status)
	case i.entry.Pending:
		status = skippedStyle.Render(status)
	default:
		status = runnableStyle.Render(status)
	}

	return fmt.Sprintf("%s  %s", status, i.entry.FullTitle)
}

// Description implements list.DefaultItem.
func (i planItem) Description() string {
	desc := fmt.Sprintf("%s  %s", i.entry.ID, i.entry.File)
	if i.entry.SkipReason != "" {
		desc += "  (" + i.entry.SkipReason + ")"
	}

	return desc
}

// FilterValue implements list.Item.
func (i planItem) FilterValue() string {
	return i.entry.FullTitle
}

type planModel struct {
	list list.Model
}

func newPlanModel(browserID string, entries []m.PlanEntry) planModel {
	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, planItem{entry: entry})
	}

	runnable, skipped, excluded := countByStatus(entries)

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("%s: %d runnable, %d skipped, %d excluded",
		browserID, runnable, skipped, excluded)

	return planModel{list: l}
}

// Init implements tea.Model.
func (pm planModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (pm planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		pm.list.SetSize(msg.Width-h, msg.Height-v)
	case tea.KeyMsg:
		// Don't intercept keys while the user is typing a filter.
		if pm.list.FilterState() != list.Filtering && msg.String() == "q" {
			return pm, tea.Quit
		}

		if msg.String() == "ctrl+c" {
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.list, cmd = pm.list.Update(msg)

	return pm, cmd
}

// View implements tea.Model.
func (pm planModel) View() string {
	return appStyle.Render(pm.list.View())
}
