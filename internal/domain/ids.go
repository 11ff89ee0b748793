package domain

import (
	"strconv"

	m "sift.dev/pkg/sift/internal/model"
)

// Hasher abstracts the short-hash collaborator used for identity derivation.
// ShortHash must be deterministic for identical input.
type Hasher interface {
	ShortHash(input string) string
}

// IdentityGenerator binds lazy, stable IDs to suites and tests as they are
// created.
//
// Suite IDs concatenate a short hash of the originating file's absolute path
// with a zero-based counter that resets whenever a new file begins loading,
// so suites defined by the same file never collide and re-running the same
// file set reproduces the same IDs. Test IDs hash the file, the full title
// and the per-file declaration index, which keeps them unique across the
// whole run.
type IdentityGenerator struct {
	hasher Hasher

	file         m.Path
	suiteCounter int
	testCounter  int
}

// NewIdentityGenerator fails fast when no hash collaborator is supplied.
func NewIdentityGenerator(hasher Hasher) (*IdentityGenerator, error) {
	if hasher == nil {
		return nil, &m.ConfigurationError{Missing: "hash collaborator"}
	}

	return &IdentityGenerator{hasher: hasher}, nil
}

// BeginFile resets the per-file counters before a file starts loading.
func (g *IdentityGenerator) BeginFile(file m.Path) {
	g.file = file
	g.suiteCounter = 0
	g.testCounter = 0
}

// BindSuite installs the suite's lazy ID. The counter advances at creation
// time; the hash is computed on first ID access and cached by the node.
func (g *IdentityGenerator) BindSuite(s *m.Suite) {
	hasher := g.hasher
	file := string(g.file)
	n := g.suiteCounter
	g.suiteCounter++

	s.BindID(func() string {
		return hasher.ShortHash(file) + strconv.Itoa(n)
	})
}

// BindTest installs the test's lazy ID.
func (g *IdentityGenerator) BindTest(t *m.Test) {
	hasher := g.hasher
	file := string(g.file)
	title := t.Title
	n := g.testCounter
	g.testCounter++

	t.BindID(func() string {
		return hasher.ShortHash(file + "\x00" + title + "\x00" + strconv.Itoa(n))
	})
}
