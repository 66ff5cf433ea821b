// Package totp implements the TOTP secret derivation and RFC-6238 code
// generator (spec component C7). Per-service secrets are deterministic
// keyforge domain keys; codes follow RFC 6238 / RFC 4226 dynamic
// truncation.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/keyforge/keyforge/internal/derive"
)

// Algorithm selects the HMAC hash used by Code.
type Algorithm int

const (
	SHA1 Algorithm = iota
	SHA256
	SHA512
)

// SecretLen is the fixed size of a derived TOTP secret (spec §4.7).
const SecretLen = 20

// ErrInvalidDigits is returned for a digits value outside {6, 8}.
var ErrInvalidDigits = errors.New("totp: digits must be 6 or 8")

// ErrInvalidPeriod is returned for a period value outside {30, 60}.
var ErrInvalidPeriod = errors.New("totp: period must be 30 or 60")

// DeriveSecret computes the 20-byte shared secret for a service name.
// The index used is derive.TOTPServiceIndex(service) — deliberately a
// different rule from the SSH/wallet ServiceIndex (spec §9).
func DeriveSecret(masterSeed []byte, service string) ([]byte, error) {
	index := derive.TOTPServiceIndex(service)
	return derive.Key(masterSeed, derive.DomainServiceTOTP, index, SecretLen)
}

// Code computes the RFC-6238 TOTP code for secret at time nowUnix,
// using alg/digits/period. Defaults (per spec §4.7) are SHA1/6/30;
// callers that want those should pass SHA1, 6, 30 explicitly — this
// function does not substitute defaults for invalid zero values so
// that misconfiguration fails loudly.
func Code(secret []byte, nowUnix int64, alg Algorithm, digits int, period int) (string, error) {
	if digits != 6 && digits != 8 {
		return "", ErrInvalidDigits
	}
	if period != 30 && period != 60 {
		return "", ErrInvalidPeriod
	}

	counter := uint64(nowUnix) / uint64(period)
	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)

	h := newHMAC(alg, secret)
	h.Write(counterBytes[:])
	sum := h.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	truncated := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	code := truncated % mod

	return fmt.Sprintf("%0*d", digits, code), nil
}

func newHMAC(alg Algorithm, key []byte) hash.Hash {
	switch alg {
	case SHA256:
		return hmac.New(sha256.New, key)
	case SHA512:
		return hmac.New(sha512.New, key)
	default:
		return hmac.New(sha1.New, key)
	}
}

// Display inserts a single space at the midpoint of a code for
// human-readable display (e.g. "123456" -> "123 456").
func Display(code string) string {
	mid := len(code) / 2
	return code[:mid] + " " + code[mid:]
}

// Base32Encode encodes data using the RFC-4648 Base32 alphabet
// (A-Z2-7) with '=' padding to a multiple of 8 characters.
func Base32Encode(data []byte) string {
	return base32.StdEncoding.EncodeToString(data)
}

// Base32Decode reverses Base32Encode, accepting either padded or
// unpadded (caller-normalized) input.
func Base32Decode(s string) ([]byte, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if m := len(s) % 8; m != 0 {
		s += strings.Repeat("=", 8-m)
	}
	return base32.StdEncoding.DecodeString(s)
}
