// Package seed implements password-based master-seed derivation
// (spec component C2): a human-memorable passphrase plus a small
// public salt (a user label and a version integer) becomes a 64-byte
// master seed from which every other keyforge secret is expanded.
//
// The derivation is deliberately expensive (PBKDF2-HMAC-SHA512,
// 500000 iterations) and deliberately exact: any change to the salt
// string's separators, casing, or version prefix produces a different
// seed and breaks recovery of every key derived downstream. Treat this
// file as frozen once anything depends on it.
package seed

import (
	"strconv"
	"strings"

	"github.com/keyforge/keyforge/internal/primitives"
)

// Iterations is the PBKDF2 round count for master-seed derivation.
// This value is load-bearing: changing it changes every seed.
const Iterations = 500000

// Length is the size in bytes of a derived master seed.
const Length = 64

// DefaultUserLabel is used when the caller supplies an empty label.
const DefaultUserLabel = "default"

// DefaultVersion is used when the caller supplies a zero version.
const DefaultVersion = 1

// Derive computes the 64-byte master seed for (passphrase, userLabel,
// version). An empty passphrase is accepted and yields a deterministic,
// low-entropy seed — the caller's problem, not this package's.
//
// userLabel is lower-cased before use. A zero or negative version is
// replaced with DefaultVersion, and an empty userLabel with
// DefaultUserLabel, mirroring the CLI's defaults (spec §3).
func Derive(passphrase []byte, userLabel string, version int) []byte {
	if userLabel == "" {
		userLabel = DefaultUserLabel
	}
	if version <= 0 {
		version = DefaultVersion
	}

	saltString := "keyforge:" + strings.ToLower(userLabel) + ":v" + strconv.Itoa(version)
	salt := primitives.SHA256([]byte(saltString))

	return primitives.PBKDF2SHA512(passphrase, salt, Iterations, Length)
}

// SaltString reconstructs the exact salt string used internally by
// Derive, exposed for tests that need to assert the precise format
// without duplicating the literal here.
func SaltString(userLabel string, version int) string {
	if userLabel == "" {
		userLabel = DefaultUserLabel
	}
	if version <= 0 {
		version = DefaultVersion
	}
	return "keyforge:" + strings.ToLower(userLabel) + ":v" + strconv.Itoa(version)
}
