package store

// StringStore keeps a flat list of opaque string entries.
type StringStore struct {
	c *Collection[string]
}

// NewStringStore opens a string list on blob, writing an empty list if the
// blob does not exist yet.
func NewStringStore(blob Blob) (*StringStore, error) {
	c, err := NewCollection[string](blob, JSONCodec[string]{})
	if err != nil {
		return nil, err
	}
	return &StringStore{c: c}, nil
}

func (s *StringStore) LoadStrings() ([]string, error) {
	return s.c.Load()
}

func (s *StringStore) SaveStrings(entries []string) error {
	return s.c.Save(entries)
}

func (s *StringStore) AppendString(entry string) error {
	return s.c.Append(entry)
}
