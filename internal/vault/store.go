package vault

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/keyforge/keyforge/internal/blobstore"
	"github.com/keyforge/keyforge/internal/vaultcodec"
)

// Store holds one Vault in memory plus the encryption key needed to
// persist it. It serializes every mutation behind mu so that
// add/update/delete/save are atomic in effect (spec §5): after any
// operation returns, the on-disk file is a complete prior-or-new
// vault, never a partial write.
//
// Store holds no global state (spec §9's "Session" redesign note): the
// caller derives a master seed once (package seed) and passes it to
// New, which derives the vault key and then never touches the master
// seed again. Expiring or scrubbing the master seed is the caller's
// responsibility.
type Store struct {
	mu        sync.Mutex
	path      string
	vaultKey  []byte
	vault     Vault
	blobStore blobstore.BlobStore
}

// New constructs a Store backed by path, deriving its vault key from
// masterSeed. It attempts an initial Load; any load failure (missing
// file, parse failure, AEAD failure) is swallowed and an empty vault
// is kept instead (spec §4.9's first-run ergonomics).
func New(path string, masterSeed []byte) (*Store, error) {
	vaultKey, err := vaultcodec.DeriveVaultKey(masterSeed)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s := &Store{
		path:     path,
		vaultKey: vaultKey,
		vault:    newEmptyVault(now),
	}

	_ = s.Load()

	return s, nil
}

// SetBlobStore configures the optional remote-backup backend used by
// Sync. A nil backend (the default) makes Sync a local-only save.
func (s *Store) SetBlobStore(b blobstore.BlobStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobStore = b
}

// Save recomputes the checksum, encodes the vault via vaultcodec, and
// writes it atomically (write to path+".tmp", fsync, rename) so a
// cancelled or crashed save leaves the prior file intact.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	checksum, err := calculateChecksum(s.vault)
	if err != nil {
		return err
	}
	s.vault.Metadata.Checksum = checksum

	envelope, err := vaultcodec.Encode(s.vault, s.vaultKey)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(envelope); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// Load reads and decodes the vault file at path. Any failure (missing
// file, AEAD/inflate/JSON failure) resets the in-memory vault to an
// empty one and is swallowed, matching spec §4.9/§7.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.vault = newEmptyVault(time.Now().UTC())
		return err
	}

	var v Vault
	if err := vaultcodec.Decode(data, s.vaultKey, &v); err != nil {
		s.vault = newEmptyVault(time.Now().UTC())
		return err
	}

	s.vault = v
	return nil
}

// ValidateIntegrity reports whether the in-memory vault's stored
// checksum matches a freshly computed one.
func (s *Store) ValidateIntegrity() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, err := calculateChecksum(s.vault)
	if err != nil {
		return false, err
	}
	return want == s.vault.Metadata.Checksum, nil
}

// CalculateChecksum returns the checksum the in-memory vault would
// have after a Save, without mutating anything.
func (s *Store) CalculateChecksum() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calculateChecksum(s.vault)
}

// Clear replaces the in-memory vault with a fresh empty one and
// persists it.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vault = newEmptyVault(time.Now().UTC())
	return s.saveLocked()
}

// Sync updates the vault's timestamp, persists it locally, and — if a
// BlobStore backend is configured — pushes the freshly saved envelope
// to it. A remote-backup failure is returned to the caller but never
// prevents (or rolls back) the local save, which has already
// succeeded by the time Sync attempts the remote push (spec §7).
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vault.Updated = time.Now().UTC()
	if err := s.saveLocked(); err != nil {
		return err
	}

	if s.blobStore == nil {
		return nil
	}

	envelope, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	handle, err := s.blobStore.Put(envelope)
	if err != nil {
		return err
	}
	s.vault.Metadata.Backups.Local = handle
	return nil
}

// touch stamps Updated with the current time. Callers hold s.mu.
func (s *Store) touchLocked() {
	s.vault.Updated = time.Now().UTC()
}
