package model

// PlanEntry is the persisted form of one compiled test. Entries are written
// in execution order, one plan file per browser.
type PlanEntry struct {
	ID         string
	BrowserID  string
	File       Path
	FullTitle  string
	Pending    bool
	SilentSkip bool
	SkipReason string
}

// PlanEntryFromTest snapshots a compiled test into its persisted form.
func PlanEntryFromTest(t *Test) PlanEntry {
	return PlanEntry{
		ID:         t.ID(),
		BrowserID:  t.BrowserID,
		File:       t.File,
		FullTitle:  t.FullTitle(),
		Pending:    t.Pending,
		SilentSkip: t.SilentSkip,
		SkipReason: t.SkipReason,
	}
}

// Status renders the selection outcome as a short label for display.
func (e PlanEntry) Status() string {
	switch {
	case e.SilentSkip:
		return "excluded"
	case e.Pending:
		return "skipped"
	default:
		return "runnable"
	}
}
