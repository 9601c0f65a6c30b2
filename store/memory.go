package store

import (
	"errors"
	"path"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
)

// FSBlob stores the blob as a file inside a hackpadfs file system. The
// file system must support creating, renaming and stat-ing files.
type FSBlob struct {
	fs   hackpadfs.FS
	name string
}

func NewFSBlob(fsys hackpadfs.FS, name string) (*FSBlob, error) {
	if !hackpadfs.ValidPath(name) {
		return nil, &hackpadfs.PathError{Op: "open", Path: name, Err: hackpadfs.ErrInvalid}
	}
	if dir := path.Dir(name); dir != "." {
		if err := hackpadfs.MkdirAll(fsys, dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &FSBlob{fs: fsys, name: name}, nil
}

// NewMemoryBlob returns a blob in a fresh in-memory file system. Data is
// lost on restart.
func NewMemoryBlob(name string) (*FSBlob, error) {
	fsys, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	return NewFSBlob(fsys, name)
}

func (b *FSBlob) String() string {
	return "fs:" + b.name
}

func (b *FSBlob) Exists() (bool, error) {
	_, err := hackpadfs.Stat(b.fs, b.name)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (b *FSBlob) Read() ([]byte, error) {
	return hackpadfs.ReadFile(b.fs, b.name)
}

// Write writes a sibling temp file and renames it over the blob.
func (b *FSBlob) Write(d []byte) error {
	tmp := b.name + ".tmp"
	if err := hackpadfs.WriteFullFile(b.fs, tmp, d, 0o644); err != nil {
		_ = hackpadfs.Remove(b.fs, tmp)
		return err
	}
	if err := hackpadfs.Rename(b.fs, tmp, b.name); err != nil {
		_ = hackpadfs.Remove(b.fs, tmp)
		return err
	}
	return nil
}
