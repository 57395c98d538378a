package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

// ErrNotFound is returned by Get for a library that is not in the catalog.
var ErrNotFound = errors.New("library not found in catalog")

// Store persists catalog entries. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put replaces everything stored for entry's library.
	Put(ctx context.Context, entry *Entry) error

	// Get returns the stored entry of a library, or ErrNotFound.
	Get(ctx context.Context, library string) (*Entry, error)

	// Delete removes a library. Deleting an unknown library is a no-op.
	Delete(ctx context.Context, library string) error

	// List returns all indexed libraries ordered by name.
	List(ctx context.Context) ([]*LibraryInfo, error)

	// Search returns symbols matching q ordered by library, kind and name.
	Search(ctx context.Context, q *Query) ([]*Symbol, error)

	// Lookup returns the symbols named exactly name, ordered by library.
	Lookup(ctx context.Context, name string) ([]*Symbol, error)

	// Close releases the store.
	Close() error
}

// LibraryInfo describes an indexed library.
type LibraryInfo struct {
	Name         string    `json:"name" yaml:"name"`
	Version      string    `json:"version" yaml:"version"`
	Root         string    `json:"root" yaml:"root"`
	BuildID      string    `json:"build_id" yaml:"build_id"`
	IndexedAt    time.Time `json:"indexed_at" yaml:"indexed_at"`
	Stats        ast.Stats `json:"stats" yaml:"stats"`
	Dependencies []string  `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Symbol is one top-level declaration of an indexed library.
type Symbol struct {
	Library     string              `json:"library" yaml:"library"`
	Kind        ast.DeclarationKind `json:"kind" yaml:"kind"`
	Name        string              `json:"name" yaml:"name"`
	Type        string              `json:"type,omitempty" yaml:"type,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	File        string              `json:"file,omitempty" yaml:"file,omitempty"`
	Line        int                 `json:"line,omitempty" yaml:"line,omitempty"`
}

// Entry is everything stored for one library.
type Entry struct {
	Library LibraryInfo `json:"library" yaml:"library"`
	Symbols []*Symbol   `json:"symbols" yaml:"symbols"`
}

// Query filters symbols. Empty fields match everything.
type Query struct {
	// Text matches a substring of the name or description, ignoring case
	Text string

	Kind    ast.DeclarationKind
	Library string

	// Limit caps the result count when positive
	Limit int
}

// StorageError reports a failed backend operation.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

func newStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}
