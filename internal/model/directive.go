package model

// DirectiveAction says what a selection directive does to matched nodes.
type DirectiveAction int

// Available DirectiveAction values.
const (
	// ActionSkip marks the matched subtree pending, reported to users.
	ActionSkip DirectiveAction = iota
	// ActionOnly silently excludes everything outside the matched subtree.
	ActionOnly
)

// Directive is one recorded skip/only declaration. It captures the node that
// was current when the declaration executed; an empty Browsers list means
// "all browsers". Directives are appended in declaration order and never
// removed.
type Directive struct {
	Action   DirectiveAction
	Browsers []string
	Reason   string
	Suite    *Suite // target when declared at suite scope
	Test     *Test  // target when declared at test scope, takes precedence
}

// MatchesBrowser reports whether the directive applies to the given browser.
func (d Directive) MatchesBrowser(browserID string) bool {
	if len(d.Browsers) == 0 {
		return true
	}

	for _, b := range d.Browsers {
		if b == browserID {
			return true
		}
	}

	return false
}

// Covers reports whether the directive's target is the test itself or one of
// its ancestor suites.
func (d Directive) Covers(t *Test) bool {
	if d.Test != nil {
		return d.Test == t
	}

	if d.Suite == nil {
		return false
	}

	for s := t.Suite; s != nil; s = s.Parent {
		if s == d.Suite {
			return true
		}
	}

	return false
}
