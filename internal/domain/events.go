package domain

import (
	m "sift.dev/pkg/sift/internal/model"
)

// Event is one lifecycle notification from a compiler instance. Suite and
// Test are set for the node-addition kinds; FileRead is set for the
// file-boundary kinds.
type Event struct {
	Kind     m.EventKind
	File     m.Path
	Suite    *m.Suite
	Test     *m.Test
	FileRead *FileReadPayload
}

// FileReadPayload accompanies EventBeforeFileRead and EventAfterFileRead.
// Both boundaries of one file carry the same Subset instance so consumers can
// correlate state added while the file executed.
type FileReadPayload struct {
	File      m.Path
	DSL       *Namespace
	BrowserID string
	Subset    *SuiteSubset
	Parser    ParserHandle
}

// ParserHandle is handed to definition files as they load; it exposes the
// selection DSL and the browser the tree is being compiled for.
type ParserHandle struct {
	DSL       *Namespace
	BrowserID string
}

// Listener receives events synchronously, in emission order.
type Listener func(Event)

type registration struct {
	kind m.EventKind
	fn   Listener
}

// Bus fans events out to listeners registered on one compiler instance.
// Delivery is synchronous and in registration order; there is no buffering or
// replay, a listener registered after an event fired never observes it.
type Bus struct {
	registrations []registration
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// On registers a listener for one event kind.
func (b *Bus) On(kind m.EventKind, fn Listener) {
	b.registrations = append(b.registrations, registration{kind: kind, fn: fn})
}

// Emit delivers the event to every matching listener before returning.
func (b *Bus) Emit(e Event) {
	for _, reg := range b.registrations {
		if reg.kind == e.Kind {
			reg.fn(e)
		}
	}
}
