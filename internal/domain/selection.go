package domain

import (
	"log/slog"
	"sync"

	m "sift.dev/pkg/sift/internal/model"
)

// DirectiveLog accumulates skip/only declarations in the order files declare
// them. Directives are never removed; resolution interprets the whole log.
type DirectiveLog struct {
	directives []m.Directive
}

// NewDirectiveLog creates an empty log.
func NewDirectiveLog() *DirectiveLog {
	return &DirectiveLog{}
}

// Append records one directive.
func (l *DirectiveLog) Append(d m.Directive) {
	l.directives = append(l.directives, d)
}

// All returns the directives in declaration order.
func (l *DirectiveLog) All() []m.Directive {
	return l.directives
}

// session binds the process-wide DSL builders to the compiler instance whose
// file is currently executing: its directive log and a view of the node
// currently being defined.
type session struct {
	log    *DirectiveLog
	target func() (*m.Suite, *m.Test)
}

// Namespace is the process-wide selection DSL exposed to definition files.
// Installing it twice is a no-op; teardown is owned by the caller, not by the
// compiler.
type Namespace struct {
	Skip *SkipBuilder
	Only *OnlyBuilder

	mu      sync.Mutex
	current *session
}

var (
	namespaceMu      sync.Mutex
	defaultNamespace *Namespace
)

// InstallNamespace returns the process-wide namespace, creating it on first
// call. A namespace installed by a previous compiler instance in the same
// process is left untouched.
func InstallNamespace() *Namespace {
	namespaceMu.Lock()
	defer namespaceMu.Unlock()

	if defaultNamespace == nil {
		ns := &Namespace{}
		ns.Skip = &SkipBuilder{ns: ns}
		ns.Only = &OnlyBuilder{ns: ns}
		defaultNamespace = ns
	}

	return defaultNamespace
}

// ResetNamespace tears the process-wide namespace down. Only the process
// owner should call this; compiler instances never do.
func ResetNamespace() {
	namespaceMu.Lock()
	defer namespaceMu.Unlock()

	defaultNamespace = nil
}

// bind attaches a session for the duration of one file's execution. The lock
// is held until release so concurrently loading compiler instances serialize
// their file evaluations instead of mixing directive scopes.
func (ns *Namespace) bind(s *session) (release func()) {
	ns.mu.Lock()
	ns.current = s

	return func() {
		ns.current = nil
		ns.mu.Unlock()
	}
}

func (ns *Namespace) append(d m.Directive) {
	s := ns.current
	if s == nil {
		slog.Warn("selection DSL called outside a definition file, ignored")
		return
	}

	suite, test := s.target()
	d.Suite = suite
	d.Test = test
	s.log.Append(d)
}

// SkipBuilder marks the suite or test currently being defined as skipped.
type SkipBuilder struct {
	ns *Namespace
}

// In skips the current node when compiling for the named browser.
func (b *SkipBuilder) In(browserID, reason string) {
	b.ns.append(m.Directive{
		Action:   m.ActionSkip,
		Browsers: []string{browserID},
		Reason:   reason,
	})
}

// All skips the current node in every browser.
func (b *SkipBuilder) All(reason string) {
	b.ns.append(m.Directive{Action: m.ActionSkip, Reason: reason})
}

// OnlyBuilder is the dual of SkipBuilder: it keeps the current node and
// silently excludes everything else.
type OnlyBuilder struct {
	ns *Namespace
}

// In keeps the current node only when compiling for one of the named
// browsers; in other browsers the node itself is silently excluded.
func (b *OnlyBuilder) In(browserIDs ...string) {
	b.ns.append(m.Directive{
		Action:   m.ActionOnly,
		Browsers: browserIDs,
	})
}

// Resolver turns the accumulated directive log into final pending state.
// It runs once per tree, after all files are loaded and before flattening.
type Resolver struct {
	browserID string
}

// NewResolver creates a resolver for one browser's tree.
func NewResolver(browserID string) *Resolver {
	return &Resolver{browserID: browserID}
}

// Resolve walks every test and applies the directives that target it or one
// of its ancestor suites, in declaration order, last applicable one winning.
// Skip directives produce a reported skip; when any only-directive applies to
// the browser, tests outside every only-covered subtree are excluded without
// being reported.
func (r *Resolver) Resolve(root *m.Suite, log *DirectiveLog) {
	var applicable []m.Directive

	onlyPresent := false

	for _, d := range log.All() {
		switch d.Action {
		case m.ActionOnly:
			// An only-directive narrows the run even for browsers it does
			// not name: those browsers just end up with nothing covered.
			onlyPresent = true
			applicable = append(applicable, d)
		case m.ActionSkip:
			if d.MatchesBrowser(r.browserID) {
				applicable = append(applicable, d)
			}
		}
	}

	root.EachTest(func(t *m.Test) {
		skip := false
		reason := ""
		covered := false

		for _, d := range applicable {
			if !d.Covers(t) {
				continue
			}

			switch d.Action {
			case m.ActionSkip:
				skip, reason = true, d.Reason
			case m.ActionOnly:
				covered = d.MatchesBrowser(r.browserID)
				skip = false
			}
		}

		switch {
		case skip:
			t.Pending = true
			t.SilentSkip = false
			t.SkipReason = reason
		case onlyPresent && !covered:
			t.Pending = true
			t.SilentSkip = true
		}
	})
}
