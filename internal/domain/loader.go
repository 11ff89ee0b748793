package domain

import (
	"path/filepath"

	m "sift.dev/pkg/sift/internal/model"
)

// Engine abstracts the host definition engine that parses file syntax and
// drives tree construction through the EngineHost callbacks.
type Engine interface {
	// Configure wires shared options into the engine before any file loads.
	Configure(opts map[string]string)
	// AddFile registers a definition file for the next LoadFiles call.
	AddFile(path m.Path)
	// Invalidate drops any cached definition for the path so the next load
	// re-reads the file.
	Invalidate(path m.Path)
	// LoadFiles executes every registered file sequentially, firing the host
	// callbacks, then clears its registration list.
	LoadFiles(host EngineHost) error
	// Grep installs a title-matching filter.
	Grep(pattern string)
	// Matcher returns the installed filter, nil when no grep is active.
	Matcher() func(fullTitle string) bool
}

// EngineHost is the tree-mutation surface the engine calls into while a file
// executes. All calls are synchronous; an error aborts the load.
type EngineHost interface {
	BeginFile(file m.Path)
	EndFile(file m.Path)
	EnterSuite(title string, file m.Path) error
	ExitSuite()
	BeginTest(title string, body any, file m.Path) error
	EndTest()
	AddHook(kind string, body any, file m.Path) error
	Skip() *SkipBuilder
	Only() *OnlyBuilder
}

// Loader drives file execution for one compiler instance: it invalidates and
// registers paths, implements the EngineHost callbacks and publishes the
// file-read boundaries with a per-file SuiteSubset.
type Loader struct {
	engine    Engine
	tree      *Tree
	bus       *Bus
	ns        *Namespace
	log       *DirectiveLog
	parser    ParserHandle
	browserID string

	subsets map[m.Path]*SuiteSubset
	release func()
}

func newLoader(engine Engine, tree *Tree, bus *Bus, ns *Namespace, log *DirectiveLog, parser ParserHandle, browserID string) *Loader {
	return &Loader{
		engine:    engine,
		tree:      tree,
		bus:       bus,
		ns:        ns,
		log:       log,
		parser:    parser,
		browserID: browserID,
		subsets:   make(map[m.Path]*SuiteSubset),
	}
}

// Load resolves, invalidates and registers every path in order, then has the
// engine execute the whole batch. The engine clears its registration list
// afterwards, so a later Load call never re-executes this batch.
func (l *Loader) Load(files ...string) error {
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}

		path := m.Path(abs)
		l.engine.Invalidate(path)
		l.engine.AddFile(path)
	}

	err := l.engine.LoadFiles(l)

	// An aborted file never reaches EndFile; release the DSL binding here so
	// the namespace is usable by whoever inspects the failure.
	if l.release != nil {
		l.release()
		l.release = nil
	}

	return err
}

// BeginFile implements EngineHost: the pre-load boundary of one file.
func (l *Loader) BeginFile(file m.Path) {
	l.tree.beginFile(file)

	subset := newSuiteSubset(l.tree, file)
	l.subsets[file] = subset

	l.release = l.ns.bind(&session{log: l.log, target: l.tree.currentTarget})

	l.bus.Emit(Event{
		Kind: m.EventBeforeFileRead,
		File: file,
		FileRead: &FileReadPayload{
			File:      file,
			DSL:       l.ns,
			BrowserID: l.browserID,
			Subset:    subset,
			Parser:    l.parser,
		},
	})
}

// EndFile implements EngineHost: the post-load boundary. It carries the same
// SuiteSubset instance BeginFile published for this file.
func (l *Loader) EndFile(file m.Path) {
	l.bus.Emit(Event{
		Kind: m.EventAfterFileRead,
		File: file,
		FileRead: &FileReadPayload{
			File:      file,
			DSL:       l.ns,
			BrowserID: l.browserID,
			Subset:    l.subsets[file],
			Parser:    l.parser,
		},
	})

	if l.release != nil {
		l.release()
		l.release = nil
	}
}

// EnterSuite implements EngineHost.
func (l *Loader) EnterSuite(title string, file m.Path) error {
	_, err := l.tree.pushSuite(title, file)
	return err
}

// ExitSuite implements EngineHost.
func (l *Loader) ExitSuite() {
	l.tree.popSuite()
}

// BeginTest implements EngineHost.
func (l *Loader) BeginTest(title string, body any, file m.Path) error {
	_, err := l.tree.beginTest(title, body, file)
	return err
}

// EndTest implements EngineHost.
func (l *Loader) EndTest() {
	l.tree.endTest()
}

// AddHook implements EngineHost.
func (l *Loader) AddHook(kind string, body any, file m.Path) error {
	_, err := l.tree.addHook(kind, body, file)
	return err
}

// Skip implements EngineHost.
func (l *Loader) Skip() *SkipBuilder { return l.ns.Skip }

// Only implements EngineHost.
func (l *Loader) Only() *OnlyBuilder { return l.ns.Only }
