package blobstore

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/keyforge/keyforge/internal/primitives"
)

// Local is a filesystem-backed BlobStore: blobs are content-addressed
// by SHA-256 hex digest under dir, and a "LATEST" pointer file records
// the handle of the most recent Put.
type Local struct {
	dir string
}

// NewLocal returns a Local backend rooted at dir, creating it if
// necessary.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

func (l *Local) blobPath(handle string) string {
	return filepath.Join(l.dir, handle+".blob")
}

func (l *Local) latestPath() string {
	return filepath.Join(l.dir, "LATEST")
}

// Put writes data to dir/<sha256-hex>.blob and updates the LATEST
// pointer, returning the hex digest as the handle.
func (l *Local) Put(data []byte) (string, error) {
	handle := hex.EncodeToString(primitives.SHA256(data))
	if err := os.WriteFile(l.blobPath(handle), data, 0600); err != nil {
		return "", err
	}
	if err := os.WriteFile(l.latestPath(), []byte(handle), 0600); err != nil {
		return "", err
	}
	return handle, nil
}

// Get reads the blob identified by handle.
func (l *Local) Get(handle string) ([]byte, error) {
	return os.ReadFile(l.blobPath(handle))
}

// Latest returns the handle written by the most recent Put, or "" if
// no blob has ever been stored.
func (l *Local) Latest() (string, error) {
	data, err := os.ReadFile(l.latestPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Quote reports a zero cost: the local backend is free.
func (l *Local) Quote(data []byte) (Quote, error) {
	return Quote{Size: int64(len(data)), PriceMinorUnits: 0, Currency: "USD", FXRate: 1}, nil
}

// Balance reports an unbounded balance: the local backend is never
// funds-constrained.
func (l *Local) Balance() (Balance, error) {
	return Balance{Confirmed: 1 << 62, Unconfirmed: 0, Total: 1 << 62}, nil
}
