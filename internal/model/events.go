package model

// EventKind labels compiler lifecycle notifications.
type EventKind string

// Event kinds emitted while a compiler instance loads definition files.
const (
	// EventSuite fires when a new suite is added to the tree.
	EventSuite EventKind = "suite"
	// EventTest fires when a new test is added to the tree.
	EventTest EventKind = "test"
	// EventBeforeFileRead fires just before a definition file executes.
	EventBeforeFileRead EventKind = "beforeFileRead"
	// EventAfterFileRead fires right after a definition file finished executing.
	EventAfterFileRead EventKind = "afterFileRead"
)
