// Package domain implements the test-definition compiler: it builds a
// normalized suite/test/hook tree from definition files, assigns stable
// identities, validates structural constraints and applies the skip/only/grep
// selection layers before handing a flat, execution-ready test list to the
// caller.
package domain

import (
	"fmt"
	"log/slog"

	m "sift.dev/pkg/sift/internal/model"
)

// SkipPolicy is the external per-browser skip-policy collaborator.
type SkipPolicy interface {
	Apply(root *m.Suite, browserID string)
}

// Config carries the collaborators a compiler instance is constructed with.
type Config struct {
	Engine Engine
	Hasher Hasher
	// EngineOptions are shared options wired into the engine at construction.
	EngineOptions map[string]string
}

type state int

const (
	stateConstructed state = iota
	stateLoading
	stateLoaded
	stateCompiled
)

// Compiler owns the suite tree for one browser and one run. Instances are
// single-use: load definition files, optionally narrow the selection, compile
// once, discard.
type Compiler struct {
	browserID string
	state     state

	engine   Engine
	root     *m.Suite
	tree     *Tree
	bus      *Bus
	log      *DirectiveLog
	ns       *Namespace
	loader   *Loader
	resolved bool
}

// New constructs a compiler for one browser: it creates the root suite,
// wires the shared options into the engine, installs the process-wide DSL
// namespace (a no-op if a previous instance already did) and prepares the
// parser handle definition files will see.
func New(browserID string, cfg Config) (*Compiler, error) {
	if browserID == "" {
		return nil, &m.ConfigurationError{Missing: "browser id"}
	}

	if cfg.Engine == nil {
		return nil, &m.ConfigurationError{Missing: "definition engine"}
	}

	ids, err := NewIdentityGenerator(cfg.Hasher)
	if err != nil {
		return nil, err
	}

	cfg.Engine.Configure(cfg.EngineOptions)

	ns := InstallNamespace()
	bus := NewBus()
	log := NewDirectiveLog()
	root := m.NewRootSuite(browserID)
	tree := newTree(root, browserID, ids, NewValidator(), bus)
	parser := ParserHandle{DSL: ns, BrowserID: browserID}

	return &Compiler{
		browserID: browserID,
		engine:    cfg.Engine,
		root:      root,
		tree:      tree,
		bus:       bus,
		log:       log,
		ns:        ns,
		loader:    newLoader(cfg.Engine, tree, bus, ns, log, parser, browserID),
	}, nil
}

// BrowserID returns the browser the tree is compiled for.
func (c *Compiler) BrowserID() string { return c.browserID }

// Root returns the root suite.
func (c *Compiler) Root() *m.Suite { return c.root }

// On registers an event listener on this instance's bus.
func (c *Compiler) On(kind m.EventKind, fn Listener) {
	c.bus.On(kind, fn)
}

// Load evaluates the given definition files in order, populating the tree.
// It may be called again to load a further batch. A validation failure aborts
// the call; the partial tree is left as-is and the instance must be
// discarded.
func (c *Compiler) Load(files ...string) error {
	c.state = stateLoading

	if err := c.loader.Load(files...); err != nil {
		return fmt.Errorf("loading definition files: %w", err)
	}

	c.state = stateLoaded
	c.resolved = false

	slog.Debug("definition files loaded", "browser", c.browserID, "files", len(files))

	return nil
}

// ApplySkip delegates to the per-browser skip-policy collaborator. Chainable.
func (c *Compiler) ApplySkip(policy SkipPolicy) *Compiler {
	if policy != nil {
		policy.Apply(c.root, c.browserID)
	}

	return c
}

// ApplyGrep installs a title filter on the engine. An empty pattern is a
// no-op. Chainable.
func (c *Compiler) ApplyGrep(pattern string) *Compiler {
	if pattern != "" {
		c.engine.Grep(pattern)
	}

	return c
}

// Compile resolves the accumulated selection directives, applies any grep
// filter and flattens the tree in depth-first declaration order. The
// returned list includes pending tests; callers decide what to do with them.
// A second call re-flattens without re-running selection.
func (c *Compiler) Compile() ([]*m.Test, error) {
	if c.state != stateLoaded && c.state != stateCompiled {
		return nil, fmt.Errorf("compile is only valid after definition files were loaded")
	}

	if !c.resolved {
		NewResolver(c.browserID).Resolve(c.root, c.log)

		// Grep narrows but never widens: tests that are already pending stay
		// pending even when they match.
		if match := c.engine.Matcher(); match != nil {
			c.root.EachTest(func(t *m.Test) {
				if !t.Pending && !match(t.FullTitle()) {
					t.Pending = true
					t.SilentSkip = true
				}
			})
		}

		c.resolved = true
	}

	c.state = stateCompiled

	return flatten(c.root), nil
}
