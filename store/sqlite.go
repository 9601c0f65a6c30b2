package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SqliteBlob stores the blob as one row of a SQLite database.
//
// Tables:
//
//	collections(name, data)  PRIMARY KEY (name)
//
// The row is still rewritten whole on every save; SQLite only provides the
// durable container.
type SqliteBlob struct {
	db     *sql.DB
	path   string
	name   string
	closer bool
}

// NewSqliteBlob opens (creating if needed) the database at dbPath and
// addresses the row called name.
func NewSqliteBlob(dbPath, name string) (*SqliteBlob, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	b, err := NewSqliteBlobFromDB(db, name)
	if err != nil {
		db.Close()
		return nil, err
	}
	b.path = dbPath
	b.closer = true
	return b, nil
}

// NewSqliteBlobFromDB uses an already opened database. Close is left to
// the caller.
func NewSqliteBlobFromDB(db *sql.DB, name string) (*SqliteBlob, error) {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		return nil, err
	}
	return &SqliteBlob{db: db, name: name}, nil
}

func (b *SqliteBlob) String() string {
	return "sqlite:" + b.path + "#" + b.name
}

func (b *SqliteBlob) Close() error {
	if !b.closer {
		return nil
	}
	return b.db.Close()
}

func (b *SqliteBlob) Exists() (bool, error) {
	var n int
	err := b.db.QueryRow("SELECT COUNT(*) FROM collections WHERE name = ?", b.name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *SqliteBlob) Read() ([]byte, error) {
	var d []byte
	err := b.db.QueryRow("SELECT data FROM collections WHERE name = ?", b.name).Scan(&d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, os.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (b *SqliteBlob) Write(d []byte) error {
	_, err := b.db.Exec(
		`INSERT INTO collections (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		b.name, d,
	)
	return err
}
