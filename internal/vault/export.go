package vault

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/keyforge/keyforge/internal/primitives"
)

// ExportVersion is the fixed "version" field stamped into every
// export container (spec §6).
const ExportVersion = "1.0.0"

// ErrInvalidFormat is returned when an export container's top-level
// shape cannot be recognised during Import.
var ErrInvalidFormat = errors.New("vault: invalid export format")

// JSONExport is the plaintext export container (spec §6 "json").
type JSONExport struct {
	ExportInfo struct {
		Version  string    `json:"version"`
		Exported time.Time `json:"exported"`
		Format   string    `json:"format"`
	} `json:"exportInfo"`
	Vault Vault `json:"vault"`
}

// EncryptedExport is the single-secret encrypted export container
// (spec §6 "encrypted"): the vault's canonical JSON, sealed directly
// with the store's vault key (no DEFLATE stage — this is a standalone
// container, not the on-disk envelope format in internal/vaultcodec).
type EncryptedExport struct {
	Version  string    `json:"version"`
	Format   string    `json:"format"`
	Exported time.Time `json:"exported"`
	Nonce    string    `json:"nonce"`
	Tag      string    `json:"tag"`
	Data     string    `json:"data"`
}

// BackupPayload is the plaintext sealed inside a BackupExport.
type BackupPayload struct {
	Vault    Vault          `json:"vault"`
	Metadata map[string]any `json:"metadata"`
}

// BackupExport is the full-fidelity encrypted export container (spec
// §6 "backup").
type BackupExport struct {
	Format     string    `json:"format"`
	Version    string    `json:"version"`
	Exported   time.Time `json:"exported"`
	Encryption string    `json:"encryption"`
	Nonce      string    `json:"nonce"`
	Tag        string    `json:"tag"`
	Data       string    `json:"data"`
}

// ExportJSON returns the plaintext JSON export container.
func (s *Store) ExportJSON() (JSONExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out JSONExport
	out.ExportInfo.Version = ExportVersion
	out.ExportInfo.Exported = time.Now().UTC()
	out.ExportInfo.Format = "json"
	out.Vault = s.vault
	return out, nil
}

// ExportEncrypted seals the vault's canonical JSON under the store's
// vault key and returns the encrypted export container.
func (s *Store) ExportEncrypted() (EncryptedExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sealExport("encrypted", nil)
}

// ExportBackup seals {vault, metadata} under the store's vault key and
// returns the backup export container.
func (s *Store) ExportBackup(metadata map[string]any) (BackupExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc, err := s.sealExport("backup", metadata)
	if err != nil {
		return BackupExport{}, err
	}
	return BackupExport{
		Format:     "keyforge-backup",
		Version:    ExportVersion,
		Exported:   enc.Exported,
		Encryption: "ChaCha20-Poly1305",
		Nonce:      enc.Nonce,
		Tag:        enc.Tag,
		Data:       enc.Data,
	}, nil
}

func (s *Store) sealExport(format string, metadata map[string]any) (EncryptedExport, error) {
	var plain []byte
	var err error
	if format == "backup" {
		plain, err = json.Marshal(BackupPayload{Vault: s.vault, Metadata: metadata})
	} else {
		plain, err = json.Marshal(s.vault)
	}
	if err != nil {
		return EncryptedExport{}, err
	}

	nonce, err := primitives.Random(12)
	if err != nil {
		return EncryptedExport{}, err
	}
	sealed, err := primitives.ChaCha20Poly1305Seal(s.vaultKey, nonce, plain)
	if err != nil {
		return EncryptedExport{}, err
	}
	ciphertext := sealed[:len(sealed)-16]
	tag := sealed[len(sealed)-16:]

	return EncryptedExport{
		Version:  ExportVersion,
		Format:   format,
		Exported: time.Now().UTC(),
		Nonce:    base64.StdEncoding.EncodeToString(nonce),
		Tag:      base64.StdEncoding.EncodeToString(tag),
		Data:     base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Import replaces the in-memory vault's record set from an export
// container, auto-detecting its format: a top-level "format" field
// selects "encrypted" or a bare "keyforge-backup" (the backup export
// carries format at the top level too); its absence is treated as the
// plain "json" container (spec §6). Import persists the replacement
// before returning.
func (s *Store) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var probe struct {
		Format string `json:"format"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return ErrInvalidFormat
	}

	var imported Vault
	switch probe.Format {
	case "encrypted":
		var enc EncryptedExport
		if err := json.Unmarshal(data, &enc); err != nil {
			return ErrInvalidFormat
		}
		v, err := s.openExport(enc.Nonce, enc.Tag, enc.Data)
		if err != nil {
			return err
		}
		imported = v
	case "keyforge-backup":
		var enc BackupExport
		if err := json.Unmarshal(data, &enc); err != nil {
			return ErrInvalidFormat
		}
		plain, err := s.decryptExport(enc.Nonce, enc.Tag, enc.Data)
		if err != nil {
			return err
		}
		var payload BackupPayload
		if err := json.Unmarshal(plain, &payload); err != nil {
			return ErrInvalidFormat
		}
		imported = payload.Vault
	default:
		var j JSONExport
		if err := json.Unmarshal(data, &j); err != nil {
			return ErrInvalidFormat
		}
		imported = j.Vault
	}

	s.vault = imported
	s.touchLocked()
	return s.saveLocked()
}

func (s *Store) openExport(nonceB64, tagB64, dataB64 string) (Vault, error) {
	plain, err := s.decryptExport(nonceB64, tagB64, dataB64)
	if err != nil {
		return Vault{}, err
	}
	var v Vault
	if err := json.Unmarshal(plain, &v); err != nil {
		return Vault{}, ErrInvalidFormat
	}
	return v, nil
}

func (s *Store) decryptExport(nonceB64, tagB64, dataB64 string) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	tag, err := base64.StdEncoding.DecodeString(tagB64)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	ciphertext, err := base64.StdEncoding.DecodeString(dataB64)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)
	return primitives.ChaCha20Poly1305Open(s.vaultKey, nonce, sealed)
}
