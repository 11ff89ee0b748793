// Package model defines the data structures for compiled test plans.
package model

// Path represents a file system path.
type Path string

// Node is any member of the suite tree: a nested Suite, a Test or a Hook.
type Node interface {
	// NodeFile returns the definition file the node originates from.
	NodeFile() Path
}

// Suite is a named grouping node containing tests, hooks and nested suites.
// Children keeps declaration order; Parent is a back-reference only.
type Suite struct {
	Title     string
	File      Path
	BrowserID string
	Parent    *Suite
	Children  []Node

	id   string
	idFn func() string
}

// NewRootSuite creates the unparented root of a compiler instance's tree.
func NewRootSuite(browserID string) *Suite {
	return &Suite{BrowserID: browserID}
}

// Root reports whether the suite is the tree root.
func (s *Suite) Root() bool { return s.Parent == nil }

// NodeFile implements Node.
func (s *Suite) NodeFile() Path { return s.File }

// BindID installs the lazy ID derivation. The first binding wins; the ID
// itself is computed on first access to ID and cached.
func (s *Suite) BindID(fn func() string) {
	if s.idFn == nil && s.id == "" {
		s.idFn = fn
	}
}

// ID returns the suite identity, computing it on first access.
func (s *Suite) ID() string {
	if s.id == "" && s.idFn != nil {
		s.id = s.idFn()
		s.idFn = nil
	}

	return s.id
}

// Suites returns the child suites in declaration order.
func (s *Suite) Suites() []*Suite {
	var out []*Suite

	for _, child := range s.Children {
		if nested, ok := child.(*Suite); ok {
			out = append(out, nested)
		}
	}

	return out
}

// Tests returns the direct child tests in declaration order.
func (s *Suite) Tests() []*Test {
	var out []*Test

	for _, child := range s.Children {
		if test, ok := child.(*Test); ok {
			out = append(out, test)
		}
	}

	return out
}

// Hooks returns the hooks registered on the suite in declaration order.
func (s *Suite) Hooks() []*Hook {
	var out []*Hook

	for _, child := range s.Children {
		if hook, ok := child.(*Hook); ok {
			out = append(out, hook)
		}
	}

	return out
}

// EachTest visits every test in the subtree in depth-first declaration order.
func (s *Suite) EachTest(fn func(*Test)) {
	for _, child := range s.Children {
		switch node := child.(type) {
		case *Test:
			fn(node)
		case *Suite:
			node.EachTest(fn)
		}
	}
}

// EachSuite visits every nested suite in depth-first declaration order.
// The root itself is not visited.
func (s *Suite) EachSuite(fn func(*Suite)) {
	for _, child := range s.Children {
		if nested, ok := child.(*Suite); ok {
			fn(nested)
			nested.EachSuite(fn)
		}
	}
}

// Test is a leaf node representing one executable check. Body is opaque to
// the compiler and owned by the definition engine.
type Test struct {
	Title      string
	File       Path
	Suite      *Suite
	BrowserID  string
	Pending    bool
	SilentSkip bool
	SkipReason string
	Body       any

	id   string
	idFn func() string
}

// NodeFile implements Node.
func (t *Test) NodeFile() Path { return t.File }

// BindID installs the lazy ID derivation, first binding wins.
func (t *Test) BindID(fn func() string) {
	if t.idFn == nil && t.id == "" {
		t.idFn = fn
	}
}

// ID returns the test identity, computing it on first access.
func (t *Test) ID() string {
	if t.id == "" && t.idFn != nil {
		t.id = t.idFn()
		t.idFn = nil
	}

	return t.id
}

// FullTitle returns the suite titles and the test title joined by spaces,
// skipping the untitled root. Grep patterns match against this string.
func (t *Test) FullTitle() string {
	title := t.Title

	for s := t.Suite; s != nil && !s.Root(); s = s.Parent {
		if s.Title != "" {
			title = s.Title + " " + title
		}
	}

	return title
}

// HookKind distinguishes the per-test hook flavours.
type HookKind string

// Hook kinds accepted by the tree. Suite-wide hooks ("before"/"after") are
// rejected at registration time, see domain.Validator.
const (
	HookBeforeEach HookKind = "beforeEach"
	HookAfterEach  HookKind = "afterEach"
)

// Hook is a per-test setup or teardown attached to a suite.
type Hook struct {
	Kind      HookKind
	File      Path
	Suite     *Suite
	BrowserID string
	Body      any
}

// NodeFile implements Node.
func (h *Hook) NodeFile() Path { return h.File }
