// Package primitives wraps the raw cryptographic building blocks used
// throughout keyforge: hashing, HMAC, AEAD, CSPRNG, constant-time
// compare, and secure-memory scrubbing. Nothing in this package logs
// or retains state; every function is pure given its inputs.
package primitives

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// ErrAeadFailure is returned whenever an AEAD seal or open operation
// fails, including authentication-tag mismatch on open.
var ErrAeadFailure = errors.New("primitives: aead failure")

// ErrBadLength is returned when a requested output length is invalid
// for the primitive being used (e.g. zero, negative, or exceeding the
// primitive's maximum expansion).
var ErrBadLength = errors.New("primitives: bad length")

// Random returns n cryptographically secure random bytes.
func Random(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBadLength
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CTEqual reports whether a and b are equal using a constant-time
// comparison. Unequal lengths are reported as unequal without leaking
// timing information proportional to the mismatch location.
func CTEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Scrub overwrites buf in place: first with random bytes, then with
// 0xFF, then with 0x00. This is the standard sensitive-memory release
// sequence used for master seeds and derived key material once a
// session ends.
func Scrub(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_, _ = io.ReadFull(rand.Reader, buf)
	for i := range buf {
		buf[i] = 0xFF
	}
	for i := range buf {
		buf[i] = 0x00
	}
}

// PBKDF2SHA512 derives outLen bytes from password and salt using
// PBKDF2-HMAC-SHA512 with the given iteration count.
func PBKDF2SHA512(password, salt []byte, iterations, outLen int) []byte {
	return pbkdf2.Key(password, salt, iterations, outLen, sha512.New)
}

// HMACSHA256 computes HMAC-SHA256(key, msg).
func HMACSHA256(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)
}

// HMACSHA512 computes HMAC-SHA512(key, msg).
func HMACSHA512(key, msg []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(msg)
	return h.Sum(nil)
}

// SHA1 computes SHA-1(data).
func SHA1(data []byte) []byte {
	h := sha1.Sum(data)
	return h[:]
}

// SHA256 computes SHA-256(data).
func SHA256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// RIPEMD160 computes RIPEMD-160(data), used for the Bitcoin
// hash160 = RIPEMD160(SHA256(pubkey)) construction.
func RIPEMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Keccak256 computes the Keccak-256 digest (the pre-NIST-standardization
// variant Ethereum actually specifies, not SHA3-256).
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 computes RIPEMD160(SHA256(data)), the standard Bitcoin
// public-key hash used to build P2WPKH addresses.
func Hash160(data []byte) []byte {
	return RIPEMD160(SHA256(data))
}

// ChaCha20Poly1305Seal seals plaintext under key and nonce with an
// empty AAD, returning ciphertext||tag per golang.org/x/crypto/chacha20poly1305.
func ChaCha20Poly1305Seal(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrBadLength
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// ChaCha20Poly1305Open reverses ChaCha20Poly1305Seal. Any failure
// (wrong key, tampered ciphertext, wrong nonce length) is reported as
// ErrAeadFailure.
func ChaCha20Poly1305Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrAeadFailure
	}
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAeadFailure
	}
	return pt, nil
}
