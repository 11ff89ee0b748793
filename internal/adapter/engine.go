package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"sift.dev/pkg/sift/internal/domain"
	m "sift.dev/pkg/sift/internal/model"
)

// suiteDef is the YAML shape of a suite. A definition file as a whole decodes
// into the same shape; its title is ignored and its contents attach to the
// tree root.
type suiteDef struct {
	Title      string     `yaml:"title"`
	Skip       []skipDef  `yaml:"skip"`
	Only       *onlyDef   `yaml:"only"`
	BeforeEach []string   `yaml:"beforeEach"`
	AfterEach  []string   `yaml:"afterEach"`
	BeforeAll  []string   `yaml:"beforeAll"`
	AfterAll   []string   `yaml:"afterAll"`
	Tests      []testDef  `yaml:"tests"`
	Suites     []suiteDef `yaml:"suites"`
}

type testDef struct {
	Title string    `yaml:"title"`
	Run   []string  `yaml:"run"`
	Skip  []skipDef `yaml:"skip"`
	Only  *onlyDef  `yaml:"only"`
}

type skipDef struct {
	In     []string `yaml:"in"`
	Reason string   `yaml:"reason"`
}

type onlyDef struct {
	In []string `yaml:"in"`
}

// SpecEngine is the host definition engine: it parses YAML definition files
// and replays their contents as synchronous calls against the EngineHost.
// Parsed definitions are cached per path until invalidated.
type SpecEngine struct {
	opts    map[string]string
	files   []m.Path
	store   map[m.Path]*suiteDef
	matcher func(fullTitle string) bool
}

// NewSpecEngine creates an engine with an empty definition store.
func NewSpecEngine() *SpecEngine {
	return &SpecEngine{store: make(map[m.Path]*suiteDef)}
}

// Configure implements domain.Engine.
func (e *SpecEngine) Configure(opts map[string]string) {
	e.opts = opts
}

// AddFile implements domain.Engine.
func (e *SpecEngine) AddFile(path m.Path) {
	e.files = append(e.files, path)
}

// Invalidate implements domain.Engine: it drops the cached definition so the
// next load re-reads the file.
func (e *SpecEngine) Invalidate(path m.Path) {
	delete(e.store, path)
}

// Grep implements domain.Engine. The pattern is compiled as a regular
// expression; an invalid pattern degrades to a literal substring match.
func (e *SpecEngine) Grep(pattern string) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		slog.Warn("grep pattern is not a valid regexp, matching literally", "pattern", pattern)

		e.matcher = func(fullTitle string) bool {
			return strings.Contains(fullTitle, pattern)
		}

		return
	}

	e.matcher = re.MatchString
}

// Matcher implements domain.Engine.
func (e *SpecEngine) Matcher() func(fullTitle string) bool {
	return e.matcher
}

// LoadFiles implements domain.Engine: it executes every registered file in
// order, firing the pre- and post-load boundaries around each one, and
// clears the registration list so a later call starts from a clean batch.
func (e *SpecEngine) LoadFiles(host domain.EngineHost) error {
	files := e.files
	e.files = nil

	for _, file := range files {
		host.BeginFile(file)

		doc, err := e.definition(file)
		if err != nil {
			return err
		}

		if err := e.runScope(host, doc, file, true); err != nil {
			return err
		}

		host.EndFile(file)
	}

	return nil
}

// definition returns the parsed document for a path, reading the file only
// when the store has no cached entry.
func (e *SpecEngine) definition(file m.Path) (*suiteDef, error) {
	if doc, ok := e.store[file]; ok {
		return doc, nil
	}

	raw, err := os.ReadFile(string(file))
	if err != nil {
		return nil, fmt.Errorf("reading definition file %s: %w", file, err)
	}

	var doc suiteDef
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing definition file %s: %w", file, err)
	}

	e.store[file] = &doc

	return &doc, nil
}

// runScope replays one suite scope: its selection directives first, then
// hooks, tests and nested suites in document order. The root scope skips
// EnterSuite so a file's top-level content lands directly under the tree
// root.
func (e *SpecEngine) runScope(host domain.EngineHost, def *suiteDef, file m.Path, root bool) error {
	if !root {
		if err := host.EnterSuite(def.Title, file); err != nil {
			return err
		}
	}

	applyDirectives(host, def.Skip, def.Only)

	if err := e.registerHooks(host, def, file); err != nil {
		return err
	}

	for i := range def.Tests {
		if err := e.runTest(host, &def.Tests[i], file); err != nil {
			return err
		}
	}

	for i := range def.Suites {
		if err := e.runScope(host, &def.Suites[i], file, false); err != nil {
			return err
		}
	}

	if !root {
		host.ExitSuite()
	}

	return nil
}

// registerHooks routes every declared hook kind through the host, including
// the suite-wide ones, which the host is expected to reject.
func (e *SpecEngine) registerHooks(host domain.EngineHost, def *suiteDef, file m.Path) error {
	hooks := []struct {
		kind  string
		steps []string
	}{
		{string(m.HookBeforeEach), def.BeforeEach},
		{string(m.HookAfterEach), def.AfterEach},
		{"beforeAll", def.BeforeAll},
		{"afterAll", def.AfterAll},
	}

	for _, h := range hooks {
		if len(h.steps) == 0 {
			continue
		}

		if err := host.AddHook(h.kind, h.steps, file); err != nil {
			return err
		}
	}

	return nil
}

func (e *SpecEngine) runTest(host domain.EngineHost, def *testDef, file m.Path) error {
	if err := host.BeginTest(def.Title, def.Run, file); err != nil {
		return err
	}

	applyDirectives(host, def.Skip, def.Only)
	host.EndTest()

	return nil
}

// applyDirectives executes skip/only entries as DSL builder calls against
// whatever node the host currently has in scope.
func applyDirectives(host domain.EngineHost, skips []skipDef, only *onlyDef) {
	for _, s := range skips {
		if len(s.In) == 0 {
			host.Skip().All(s.Reason)
			continue
		}

		for _, browserID := range s.In {
			host.Skip().In(browserID, s.Reason)
		}
	}

	if only != nil {
		host.Only().In(only.In...)
	}
}
