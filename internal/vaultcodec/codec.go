// Package vaultcodec implements the vault container format (spec
// component C8): compress (raw DEFLATE) -> encrypt (ChaCha20-Poly1305)
// -> frame. The on-disk envelope is magic-free; any tamper, length
// mismatch, or decompression/unmarshal failure surfaces as a single
// ErrVaultCorrupt so the caller can't distinguish "wrong password"
// from "bit flip" — which is the point: neither should leak more than
// "this did not decrypt."
package vaultcodec

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"errors"
	"io"

	"github.com/keyforge/keyforge/internal/derive"
	"github.com/keyforge/keyforge/internal/primitives"
)

// ErrVaultCorrupt is returned for any decode failure: bad frame
// lengths, AEAD authentication failure, inflate failure, or JSON
// parse failure.
var ErrVaultCorrupt = errors.New("vaultcodec: vault is corrupt or the passphrase is wrong")

const (
	nonceLen = 12
	tagLen   = 16
)

// DeriveVaultKey computes the 32-byte vault-encryption key from a
// master seed: DomainKey("keyforge:vault:encrypt:v1", 0, 32).
func DeriveVaultKey(masterSeed []byte) ([]byte, error) {
	return derive.Key(masterSeed, derive.DomainVaultEncrypt, 0, 32)
}

// Encode serialises v as JSON, compresses it with raw DEFLATE,
// encrypts the result with ChaCha20-Poly1305 under vaultKey and a
// fresh random 12-byte nonce, and frames it as:
//
//	byte 0       : nonce_len (always 12)
//	bytes 1..12  : nonce
//	byte 13      : tag_len (always 16)
//	bytes 14..29 : tag
//	bytes 30..   : ciphertext (compressed JSON)
func Encode(v interface{}, vaultKey []byte) ([]byte, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	compressed, err := deflate(plain)
	if err != nil {
		return nil, err
	}

	nonce, err := primitives.Random(nonceLen)
	if err != nil {
		return nil, err
	}

	sealed, err := primitives.ChaCha20Poly1305Seal(vaultKey, nonce, compressed)
	if err != nil {
		return nil, err
	}
	if len(sealed) < tagLen {
		return nil, ErrVaultCorrupt
	}
	ciphertext := sealed[:len(sealed)-tagLen]
	tag := sealed[len(sealed)-tagLen:]

	out := make([]byte, 0, 1+nonceLen+1+tagLen+len(ciphertext))
	out = append(out, byte(nonceLen))
	out = append(out, nonce...)
	out = append(out, byte(tagLen))
	out = append(out, tag...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decode reverses Encode into dst (a pointer to the target type).
// Any structural, authentication, or decompression failure is
// reported as ErrVaultCorrupt.
func Decode(envelope []byte, vaultKey []byte, dst interface{}) error {
	if len(envelope) < 1+nonceLen+1+tagLen {
		return ErrVaultCorrupt
	}
	if envelope[0] != nonceLen {
		return ErrVaultCorrupt
	}
	nonce := envelope[1 : 1+nonceLen]
	tagLenField := envelope[1+nonceLen]
	if tagLenField != tagLen {
		return ErrVaultCorrupt
	}
	tagStart := 1 + nonceLen + 1
	tag := envelope[tagStart : tagStart+tagLen]
	ciphertext := envelope[tagStart+tagLen:]

	sealed := make([]byte, 0, len(ciphertext)+tagLen)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	compressed, err := primitives.ChaCha20Poly1305Open(vaultKey, nonce, sealed)
	if err != nil {
		return ErrVaultCorrupt
	}

	plain, err := inflate(compressed)
	if err != nil {
		return ErrVaultCorrupt
	}

	if err := json.Unmarshal(plain, dst); err != nil {
		return ErrVaultCorrupt
	}
	return nil
}

func deflate(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := flate.NewWriter(buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
