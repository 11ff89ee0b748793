package domain

import (
	m "sift.dev/pkg/sift/internal/model"
)

// SuiteSubset is a live view of the tree restricted to one definition file.
// Enumeration only yields nodes the bound file contributed; mutations
// delegate to the underlying tree and stamp the bound file, so a file can
// never see or alter what its siblings added.
type SuiteSubset struct {
	tree *Tree
	file m.Path
}

func newSuiteSubset(tree *Tree, file m.Path) *SuiteSubset {
	return &SuiteSubset{tree: tree, file: file}
}

// File returns the definition file the view is bound to.
func (v *SuiteSubset) File() m.Path { return v.file }

// Suites returns the suites the bound file added, in depth-first declaration
// order.
func (v *SuiteSubset) Suites() []*m.Suite {
	var out []*m.Suite

	v.tree.Root().EachSuite(func(s *m.Suite) {
		if s.File == v.file {
			out = append(out, s)
		}
	})

	return out
}

// Tests returns the tests the bound file added, in depth-first declaration
// order.
func (v *SuiteSubset) Tests() []*m.Test {
	var out []*m.Test

	v.EachTest(func(t *m.Test) {
		out = append(out, t)
	})

	return out
}

// EachTest visits the bound file's tests in depth-first declaration order.
func (v *SuiteSubset) EachTest(fn func(*m.Test)) {
	v.tree.Root().EachTest(func(t *m.Test) {
		if t.File == v.file {
			fn(t)
		}
	})
}

// AddSuite inserts a suite under the given parent on behalf of the bound
// file. A nil parent targets the root.
func (v *SuiteSubset) AddSuite(parent *m.Suite, title string) (*m.Suite, error) {
	if parent == nil {
		parent = v.tree.Root()
	}

	return v.tree.insertSuite(parent, title, v.file)
}

// AddTest inserts a test under the given parent on behalf of the bound file.
// A nil parent targets the root.
func (v *SuiteSubset) AddTest(parent *m.Suite, title string, body any) (*m.Test, error) {
	if parent == nil {
		parent = v.tree.Root()
	}

	return v.tree.insertTest(parent, title, body, v.file)
}
