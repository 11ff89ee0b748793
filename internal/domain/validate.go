package domain

import (
	m "sift.dev/pkg/sift/internal/model"
)

// Validator enforces structural constraints at tree-mutation time. Violations
// abort the load immediately instead of being collected for compile time.
type Validator struct {
	titles map[string]m.Path
}

// NewValidator creates a validator with an empty title registry.
func NewValidator() *Validator {
	return &Validator{titles: make(map[string]m.Path)}
}

// CheckHookKind rejects suite-wide hooks. Only the per-test kinds may be
// registered on any suite.
func (v *Validator) CheckHookKind(kind string) error {
	switch kind {
	case string(m.HookBeforeEach), string(m.HookAfterEach):
		return nil
	default:
		return &m.StructuralViolationError{HookKind: kind}
	}
}

// CheckTest rejects a test whose title was already used anywhere in the tree,
// in the same file or in a previously loaded one. Runs against every
// previously inserted test, not just siblings.
func (v *Validator) CheckTest(title string, file m.Path) error {
	if first, ok := v.titles[title]; ok {
		return &m.DuplicateTitleError{Title: title, FirstFile: first, SecondFile: file}
	}

	v.titles[title] = file

	return nil
}
