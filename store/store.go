// Package store persists squirrel records as one serialized list per blob.
//
// Every operation loads the full collection, works on it in memory and,
// when it mutates, rewrites the whole blob. A per-collection mutex spans
// load through save so concurrent HTTP requests cannot lose updates.
package store

import "errors"

var (
	// ErrStorageRead is returned when a blob cannot be read or decoded.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite is returned when a blob cannot be encoded or written.
	ErrStorageWrite = errors.New("storage write failed")
)

// Squirrel is the single resource served over HTTP.
type Squirrel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size string `json:"size"`
}

// Fields carries create/update input. Only "name" and "size" are applied;
// "id" is assigned by the store and never changes.
type Fields map[string]string

func (s *Squirrel) apply(f Fields) {
	if v, ok := f["name"]; ok {
		s.Name = v
	}
	if v, ok := f["size"]; ok {
		s.Size = v
	}
}

// Store is the interface the HTTP handler depends on.
type Store interface {
	// List returns every squirrel in insertion order. Never nil.
	List() ([]Squirrel, error)

	// Get returns a squirrel by id, or nil if not found.
	Get(id string) (*Squirrel, error)

	// Create assigns a fresh id, appends the record and returns it.
	Create(fields Fields) (*Squirrel, error)

	// Update merges fields into an existing record. Returns nil if not found.
	Update(id string, fields Fields) (*Squirrel, error)

	// Delete removes a record. Returns true if it existed.
	Delete(id string) (bool, error)
}
