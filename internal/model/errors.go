package model

import "fmt"

// StructuralViolationError is raised when a definition file registers a
// suite-wide hook. The message is fixed and user-facing.
type StructuralViolationError struct {
	HookKind string
}

func (e *StructuralViolationError) Error() string {
	return `"before" and "after" hooks are forbidden, use "beforeEach" and "afterEach" hooks instead`
}

// DuplicateTitleError is raised when two tests share a title, either within
// one definition file or across files.
type DuplicateTitleError struct {
	Title      string
	FirstFile  Path
	SecondFile Path
}

func (e *DuplicateTitleError) Error() string {
	if e.FirstFile == e.SecondFile {
		return fmt.Sprintf("Tests with the same title '%s' in file '%s' can't be used", e.Title, e.FirstFile)
	}

	return fmt.Sprintf("Tests with the same title '%s' in files '%s' and '%s' can't be used", e.Title, e.FirstFile, e.SecondFile)
}

// ConfigurationError is raised when a compiler is constructed without a
// required input.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Missing)
}
