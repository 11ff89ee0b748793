// Package pkg is a package that provides utilities for sift.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// PlanLog is a generic append-only on-disk log of items of type T. Compiled
// plans are written through it, one file per browser, and read back by the
// list and view commands.
type PlanLog[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type planLogImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewPlanLog creates (or truncates) a plan log at path for writing.
func NewPlanLog[T any](path string) (PlanLog[T], error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan log: %w", err)
	}

	return &planLogImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenPlanLog opens an existing plan log for reading and counts its entries.
func OpenPlanLog[T any](path string) (PlanLog[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan log: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close plan log", "path", path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)
	length := uint64(0)

	var item T
	for {
		if err := decoder.Decode(&item); err != nil {
			break
		}

		length++
	}

	return &planLogImpl[T]{path: path, length: length}, nil
}

// Append implements PlanLog.
func (p *planLogImpl[T]) Append(item T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.encoder == nil {
		return fmt.Errorf("plan log %s is not open for writing", p.path)
	}

	if err := p.encoder.Encode(item); err != nil {
		slog.Error("failed to encode plan entry", "path", p.path, "index", p.length, "error", err)
		return fmt.Errorf("failed to encode plan entry: %w", err)
	}

	p.length++

	return nil
}

// AppendBatch implements PlanLog.
func (p *planLogImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := p.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Get implements PlanLog.
func (p *planLogImpl[T]) Get(index uint64) (T, error) {
	var zero T

	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= p.length {
		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, p.length)
	}

	file, err := os.Open(p.path)
	if err != nil {
		return zero, fmt.Errorf("failed to open plan log: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close plan log", "path", p.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T
	for i := uint64(0); i <= index; i++ {
		if err := decoder.Decode(&item); err != nil {
			return zero, fmt.Errorf("failed to decode plan entry at index %d: %w", i, err)
		}
	}

	return item, nil
}

// Range implements PlanLog.
func (p *planLogImpl[T]) Range(fn func(index uint64, item T) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	file, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("failed to open plan log: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close plan log", "path", p.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < p.length; i++ {
		var item T
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("failed to decode plan entry at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Len implements PlanLog.
func (p *planLogImpl[T]) Len() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.length
}

// Path implements PlanLog.
func (p *planLogImpl[T]) Path() string {
	return p.path
}

// Close implements PlanLog.
func (p *planLogImpl[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file != nil {
		if err := p.file.Close(); err != nil {
			slog.Error("failed to close plan log", "path", p.path, "error", err)
			return err
		}

		p.file = nil
	}

	return nil
}
