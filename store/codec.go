package store

import (
	"encoding/json"
	"errors"
)

// Codec turns a whole list into bytes and back. Decode(Encode(x)) == x.
type Codec[T any] interface {
	Encode(items []T) ([]byte, error)
	Decode(d []byte) ([]T, error)
}

// JSONCodec stores a list as an indented JSON array.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.MarshalIndent(items, "", "  ")
}

func (JSONCodec[T]) Decode(d []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(d, &items); err != nil {
		return nil, err
	}
	// "null" decodes without error but is not a list we wrote
	if items == nil {
		return nil, errors.New("expected JSON array, got null")
	}
	return items, nil
}
