package store

import (
	"errors"
	"io"
	"slices"

	"github.com/google/uuid"
)

// errNoChange aborts a Mutate without saving.
var errNoChange = errors.New("no change")

// SquirrelStore implements Store on top of a Collection.
type SquirrelStore struct {
	c *Collection[Squirrel]
}

var _ Store = (*SquirrelStore)(nil)

// NewSquirrelStore opens the squirrel list on blob, writing an empty list
// if the blob does not exist yet.
func NewSquirrelStore(blob Blob) (*SquirrelStore, error) {
	c, err := NewCollection[Squirrel](blob, JSONCodec[Squirrel]{})
	if err != nil {
		return nil, err
	}
	return &SquirrelStore{c: c}, nil
}

// Location describes where records are persisted.
func (s *SquirrelStore) Location() string {
	return s.c.Blob().String()
}

// Close releases the blob if it holds resources (e.g. a database handle).
func (s *SquirrelStore) Close() error {
	if cl, ok := s.c.Blob().(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// Save replaces every record. Meant for seeding and tests; ids are taken
// as given.
func (s *SquirrelStore) Save(items []Squirrel) error {
	return s.c.Save(items)
}

func (s *SquirrelStore) List() ([]Squirrel, error) {
	return s.c.Load()
}

func (s *SquirrelStore) Get(id string) (*Squirrel, error) {
	items, err := s.c.Load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(items, id); i >= 0 {
		sq := items[i]
		return &sq, nil
	}
	return nil, nil
}

func (s *SquirrelStore) Create(fields Fields) (*Squirrel, error) {
	sq := Squirrel{ID: uuid.NewString()}
	sq.apply(fields)
	if err := s.c.Append(sq); err != nil {
		return nil, err
	}
	return &sq, nil
}

func (s *SquirrelStore) Update(id string, fields Fields) (*Squirrel, error) {
	var updated *Squirrel
	err := s.c.Mutate(func(items []Squirrel) ([]Squirrel, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, errNoChange
		}
		items[i].apply(fields)
		sq := items[i]
		updated = &sq
		return items, nil
	})
	if errors.Is(err, errNoChange) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete saves even when nothing was removed.
func (s *SquirrelStore) Delete(id string) (bool, error) {
	removed := false
	err := s.c.Mutate(func(items []Squirrel) ([]Squirrel, error) {
		if i := indexOf(items, id); i >= 0 {
			removed = true
			return slices.Delete(items, i, i+1), nil
		}
		return items, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func indexOf(items []Squirrel, id string) int {
	return slices.IndexFunc(items, func(sq Squirrel) bool {
		return sq.ID == id
	})
}
