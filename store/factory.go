package store

import (
	"fmt"
	"path/filepath"
)

// Config selects and configures a backend for Open.
type Config struct {
	// Backend is one of "file" (default), "sqlite", "memory" or "s3".
	Backend string
	// Path is the file for "file" or the database for "sqlite".
	// Defaults to DataDir/squirrels.json or DataDir/squirrels.db.
	Path    string
	DataDir string
	S3      S3Config
}

// Open creates a SquirrelStore on the configured backend.
//
// Supported backends:
//
//	"file"   - JSON file on disk (default)
//	"sqlite" - one row in a SQLite database
//	"memory" - in-memory file system (ephemeral, for testing)
//	"s3"     - one object in an S3-compatible bucket
func Open(c Config) (*SquirrelStore, error) {
	blob, err := newBlob(c)
	if err != nil {
		return nil, err
	}
	s, err := NewSquirrelStore(blob)
	if err != nil {
		if sb, ok := blob.(*SqliteBlob); ok {
			sb.Close()
		}
		return nil, err
	}
	return s, nil
}

func newBlob(c Config) (Blob, error) {
	dataDir := c.DataDir
	if dataDir == "" {
		dataDir = "./data"
	}
	switch c.Backend {
	case "file", "":
		path := c.Path
		if path == "" {
			path = filepath.Join(dataDir, "squirrels.json")
		}
		return NewFileBlob(path)
	case "sqlite":
		path := c.Path
		if path == "" {
			path = filepath.Join(dataDir, "squirrels.db")
		}
		return NewSqliteBlob(path, "squirrels")
	case "memory":
		return NewMemoryBlob("squirrels.json")
	case "s3":
		return NewS3Blob(c.S3)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, sqlite, memory, s3)", c.Backend)
	}
}
