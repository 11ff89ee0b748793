package domain

import (
	m "sift.dev/pkg/sift/internal/model"
)

// Tree owns the suite hierarchy of one compiler instance and is the single
// mutation path into it: every insertion runs the validator, binds identity,
// stamps the browser and notifies the bus.
type Tree struct {
	root      *m.Suite
	browserID string
	ids       *IdentityGenerator
	validator *Validator
	bus       *Bus

	// stack tracks the suite scopes the engine has entered while executing
	// the current file; currentTest is set while a test is being defined.
	stack       []*m.Suite
	currentTest *m.Test
}

func newTree(root *m.Suite, browserID string, ids *IdentityGenerator, validator *Validator, bus *Bus) *Tree {
	return &Tree{
		root:      root,
		browserID: browserID,
		ids:       ids,
		validator: validator,
		bus:       bus,
		stack:     []*m.Suite{root},
	}
}

// Root returns the tree root.
func (tr *Tree) Root() *m.Suite { return tr.root }

// beginFile resets per-file state before a definition file executes.
func (tr *Tree) beginFile(file m.Path) {
	tr.ids.BeginFile(file)
	tr.stack = tr.stack[:1]
	tr.currentTest = nil
}

// currentTarget reports the node selection directives declared right now
// should attach to: the test being defined if any, otherwise the innermost
// suite.
func (tr *Tree) currentTarget() (*m.Suite, *m.Test) {
	if tr.currentTest != nil {
		return nil, tr.currentTest
	}

	return tr.stack[len(tr.stack)-1], nil
}

// pushSuite creates a suite under the current scope and enters it.
func (tr *Tree) pushSuite(title string, file m.Path) (*m.Suite, error) {
	suite, err := tr.insertSuite(tr.stack[len(tr.stack)-1], title, file)
	if err != nil {
		return nil, err
	}

	tr.stack = append(tr.stack, suite)

	return suite, nil
}

// popSuite leaves the current suite scope. The root is never popped.
func (tr *Tree) popSuite() {
	if len(tr.stack) > 1 {
		tr.stack = tr.stack[:len(tr.stack)-1]
	}
}

// insertSuite adds a suite under an explicit parent, which does not have to
// be the current scope: a file may attach anywhere reachable from the root.
func (tr *Tree) insertSuite(parent *m.Suite, title string, file m.Path) (*m.Suite, error) {
	suite := &m.Suite{
		Title:     title,
		File:      file,
		BrowserID: tr.browserID,
		Parent:    parent,
	}

	tr.ids.BindSuite(suite)
	parent.Children = append(parent.Children, suite)
	tr.bus.Emit(Event{Kind: m.EventSuite, File: file, Suite: suite})

	return suite, nil
}

// beginTest validates and adds a test under the current scope and makes it
// the directive target until endTest.
func (tr *Tree) beginTest(title string, body any, file m.Path) (*m.Test, error) {
	test, err := tr.insertTest(tr.stack[len(tr.stack)-1], title, body, file)
	if err != nil {
		return nil, err
	}

	tr.currentTest = test

	return test, nil
}

func (tr *Tree) endTest() {
	tr.currentTest = nil
}

// insertTest adds a test under an explicit parent suite.
func (tr *Tree) insertTest(parent *m.Suite, title string, body any, file m.Path) (*m.Test, error) {
	if err := tr.validator.CheckTest(title, file); err != nil {
		return nil, err
	}

	test := &m.Test{
		Title:     title,
		File:      file,
		Suite:     parent,
		BrowserID: tr.browserID,
		Body:      body,
	}

	tr.ids.BindTest(test)
	parent.Children = append(parent.Children, test)
	tr.bus.Emit(Event{Kind: m.EventTest, File: file, Test: test})

	return test, nil
}

// addHook registers a per-test hook on the current suite. Suite-wide kinds
// are rejected before anything is stored.
func (tr *Tree) addHook(kind string, body any, file m.Path) (*m.Hook, error) {
	if err := tr.validator.CheckHookKind(kind); err != nil {
		return nil, err
	}

	parent := tr.stack[len(tr.stack)-1]
	hook := &m.Hook{
		Kind:      m.HookKind(kind),
		File:      file,
		Suite:     parent,
		BrowserID: tr.browserID,
		Body:      body,
	}

	parent.Children = append(parent.Children, hook)

	return hook, nil
}

// flatten returns every test in depth-first declaration order, pending ones
// included.
func flatten(root *m.Suite) []*m.Test {
	var tests []*m.Test

	root.EachTest(func(t *m.Test) {
		tests = append(tests, t)
	})

	return tests
}
