package vault

import "errors"

// Error kinds (spec §7). CRUD errors surface to the caller unchanged;
// derivation/codec errors from lower layers (vaultcodec.ErrVaultCorrupt,
// derive.ErrBadLength, primitives.ErrAeadFailure) are likewise never
// swallowed except inside Load, per spec's documented first-run
// ergonomics carve-out.
var (
	ErrNotFound      = errors.New("vault: record not found")
	ErrAlreadyExists = errors.New("vault: a password with this site already exists")
)
