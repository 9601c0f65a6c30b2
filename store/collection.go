package store

import (
	"fmt"
	"sync"
)

// Collection is an ordered list of T persisted as one blob.
//
// The in-memory list never outlives a call: each method decodes the blob,
// works on the result and, if it mutates, encodes and rewrites the blob.
// mu is held from load through save.
type Collection[T any] struct {
	mu    sync.Mutex
	blob  Blob
	codec Codec[T]
}

// NewCollection opens a collection on blob. If the blob does not exist yet
// an empty list is written immediately.
func NewCollection[T any](blob Blob, codec Codec[T]) (*Collection[T], error) {
	c := &Collection[T]{blob: blob, codec: codec}
	ok, err := blob.Exists()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageRead, blob, err)
	}
	if !ok {
		if err := c.save(nil); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Blob returns the underlying blob.
func (c *Collection[T]) Blob() Blob {
	return c.blob
}

func (c *Collection[T]) load() ([]T, error) {
	d, err := c.blob.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageRead, c.blob, err)
	}
	items, err := c.codec.Decode(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: corrupt data: %v", ErrStorageRead, c.blob, err)
	}
	return items, nil
}

func (c *Collection[T]) save(items []T) error {
	d, err := c.codec.Encode(items)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStorageWrite, c.blob, err)
	}
	if err := c.blob.Write(d); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStorageWrite, c.blob, err)
	}
	return nil
}

// Load returns the full list as currently stored.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Save replaces the stored list with items. Prior contents are discarded.
func (c *Collection[T]) Save(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(items)
}

// Append loads the list, appends item and saves.
func (c *Collection[T]) Append(item T) error {
	return c.Mutate(func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Mutate runs fn on the loaded list and saves what it returns.
// If fn returns an error nothing is saved.
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.save(items)
}
