package store

// Blob is a single named byte blob on some storage medium. Collections
// read and write it whole.
type Blob interface {
	// Exists reports whether the blob has been written before.
	Exists() (bool, error)

	// Read returns the full contents.
	Read() ([]byte, error)

	// Write replaces the full contents.
	Write(d []byte) error

	// String names the blob's location for errors and logs.
	String() string
}
