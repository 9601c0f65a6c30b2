package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kjk/common/atomicfile"
)

// FileBlob stores the blob as a single file on disk. Writes go to a temp
// file that is renamed over the destination, so a failed write leaves the
// previous contents intact.
type FileBlob struct {
	path string
}

func NewFileBlob(path string) (*FileBlob, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileBlob{path: path}, nil
}

func (b *FileBlob) String() string {
	return b.path
}

func (b *FileBlob) Exists() (bool, error) {
	st, err := os.Stat(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !st.Mode().IsRegular() {
		return false, &fs.PathError{Op: "stat", Path: b.path, Err: errors.New("not a regular file")}
	}
	return true, nil
}

func (b *FileBlob) Read() ([]byte, error) {
	return os.ReadFile(b.path)
}

func (b *FileBlob) Write(d []byte) error {
	w, err := atomicfile.New(b.path)
	if err != nil {
		return err
	}
	defer w.RemoveIfNotClosed()

	if _, err := w.Write(d); err != nil {
		return err
	}
	return w.Close()
}
