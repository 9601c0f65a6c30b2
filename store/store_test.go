package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/squirrel-server/store"
)

// runStoreTests runs a common test suite against any backend.
func runStoreTests(t *testing.T, s *store.SquirrelStore) {
	t.Helper()

	t.Run("List empty", func(t *testing.T) {
		items, err := s.List()
		require.NoError(t, err)
		require.NotNil(t, items)
		require.Len(t, items, 0)
	})

	var chippy *store.Squirrel
	t.Run("Create and Get", func(t *testing.T) {
		var err error
		chippy, err = s.Create(store.Fields{"name": "Chippy", "size": "small"})
		require.NoError(t, err)
		require.NotEmpty(t, chippy.ID)
		assert.Equal(t, "Chippy", chippy.Name)
		assert.Equal(t, "small", chippy.Size)

		got, err := s.Get(chippy.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *chippy, *got)
	})

	t.Run("Get missing", func(t *testing.T) {
		got, err := s.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Create assigns unique ids", func(t *testing.T) {
		second, err := s.Create(store.Fields{"name": "Nutty", "size": "large"})
		require.NoError(t, err)
		assert.NotEqual(t, chippy.ID, second.ID)

		items, err := s.List()
		require.NoError(t, err)
		require.Len(t, items, 2)
		// insertion order
		assert.Equal(t, chippy.ID, items[0].ID)
		assert.Equal(t, second.ID, items[1].ID)
	})

	t.Run("Update preserves untouched fields", func(t *testing.T) {
		got, err := s.Update(chippy.ID, store.Fields{"size": "large"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, store.Squirrel{ID: chippy.ID, Name: "Chippy", Size: "large"}, *got)

		again, err := s.Get(chippy.ID)
		require.NoError(t, err)
		assert.Equal(t, *got, *again)
	})

	t.Run("Update never changes id", func(t *testing.T) {
		got, err := s.Update(chippy.ID, store.Fields{"id": "other", "name": "Chip"})
		require.NoError(t, err)
		assert.Equal(t, chippy.ID, got.ID)
		assert.Equal(t, "Chip", got.Name)
	})

	t.Run("Update missing", func(t *testing.T) {
		before, err := s.List()
		require.NoError(t, err)
		got, err := s.Update("missing", store.Fields{"name": "x"})
		require.NoError(t, err)
		assert.Nil(t, got)
		after, err := s.List()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Delete existing", func(t *testing.T) {
		existed, err := s.Delete(chippy.ID)
		require.NoError(t, err)
		assert.True(t, existed)
		got, err := s.Get(chippy.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete missing", func(t *testing.T) {
		before, err := s.List()
		require.NoError(t, err)
		existed, err := s.Delete("nope")
		require.NoError(t, err)
		assert.False(t, existed)
		after, err := s.List()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestMemoryStore(t *testing.T) {
	s, err := store.Open(store.Config{Backend: "memory"})
	require.NoError(t, err)
	runStoreTests(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := store.Open(store.Config{Backend: "file", DataDir: t.TempDir()})
	require.NoError(t, err)
	runStoreTests(t, s)
}

func TestSqliteStore(t *testing.T) {
	s, err := store.Open(store.Config{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	defer s.Close()
	runStoreTests(t, s)
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
	}{
		{"file"},
		{"sqlite"},
		{"memory"},
		{""},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			s, err := store.Open(store.Config{Backend: tc.backend, DataDir: filepath.Join(dir, tc.backend)})
			require.NoError(t, err)
			defer s.Close()
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := store.Open(store.Config{Backend: "redis", DataDir: dir})
		require.Error(t, err)
	})

	t.Run("s3 needs config", func(t *testing.T) {
		_, err := store.Open(store.Config{Backend: "s3"})
		require.Error(t, err)
	})
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squirrels.json")
	s, err := store.Open(store.Config{Path: path})
	require.NoError(t, err)
	created, err := s.Create(store.Fields{"name": "Chippy", "size": "small"})
	require.NoError(t, err)

	// a second store on the same file sees the write
	s2, err := store.Open(store.Config{Path: path})
	require.NoError(t, err)
	got, err := s2.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestSaveReplacesRecords(t *testing.T) {
	s, err := store.Open(store.Config{Backend: "memory"})
	require.NoError(t, err)
	_, err = s.Create(store.Fields{"name": "Old", "size": "tiny"})
	require.NoError(t, err)

	seed := []store.Squirrel{{ID: "1", Name: "Chippy", Size: "small"}}
	require.NoError(t, s.Save(seed))

	items, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, seed, items)
}
