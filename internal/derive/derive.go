// Package derive implements domain-separated key expansion over the
// keyforge master seed (spec component C3): an HKDF-style construction
// that turns (master seed, domain tag, index, length) into independent
// key material for every downstream generator.
//
// The single-shot branch for len<=64 intentionally omits the counter
// byte that strict RFC 5869 HKDF-Expand requires (spec §4.3, §9). This
// is a documented quirk, not a bug to be fixed: matching it exactly is
// required for recovering keys from any vault derived against this
// scheme.
package derive

import (
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/keyforge/keyforge/internal/primitives"
)

// ErrBadLength is returned when the requested output length cannot be
// produced: non-positive, or requiring more than 255 expansion blocks.
var ErrBadLength = errors.New("derive: bad length")

const (
	prkLabel  = "keyforge-expand"
	blockSize = 64 // HMAC-SHA512 output size
	maxBlocks = 255
)

// MaxLen is the largest number of bytes Key can produce in one call.
const MaxLen = maxBlocks * blockSize // 16320

// Domain tags (spec §3). Changing any of these strings breaks every
// key derived under it.
const (
	DomainSSH           = "keyforge:ssh:v1"
	DomainGPG           = "keyforge:gpg:v1"
	DomainAge           = "keyforge:age:v1"
	DomainWalletBIP39   = "keyforge:wallet:bip39:v1"
	DomainWalletPayment = "keyforge:wallet:payment:v1"
	DomainWalletMonero  = "keyforge:wallet:monero:v1"
	DomainVaultEncrypt  = "keyforge:vault:encrypt:v1"
	DomainVaultHMAC     = "keyforge:vault:hmac:v1"
	DomainVaultIPNS     = "keyforge:vault:ipns:v1"
	DomainServiceTOTP   = "keyforge:service:totp:v1"
	DomainServiceAPI    = "keyforge:service:api:v1"
	DomainServiceWebAuthn = "keyforge:service:webauthn:v1"
	DomainNostr         = "keyforge:nostr:v1"
	DomainShamir        = "keyforge:shamir:v1"
	DomainCanary        = "keyforge:canary:v1"
)

// prk computes the pseudo-random key used as the HMAC key for every
// expansion under this master seed: HMAC-SHA512("keyforge-expand", seed).
func prk(masterSeed []byte) []byte {
	return primitives.HMACSHA512([]byte(prkLabel), masterSeed)
}

// info builds the ASCII info string "domain:index:len".
func info(domain string, index uint32, length int) []byte {
	return []byte(domain + ":" + strconv.FormatUint(uint64(index), 10) + ":" + strconv.Itoa(length))
}

// Key derives length bytes of key material for (masterSeed, domain,
// index). For length<=64 this is a single HMAC-SHA512(PRK, info) call
// truncated to length (the non-standard, counter-less single-shot
// variant — see package doc). For length>64 it expands in 64-byte
// blocks T_i = HMAC-SHA512(PRK, T_{i-1} || info || byte(i)), starting
// from T_0 = empty, concatenated and truncated to length.
func Key(masterSeed []byte, domain string, index uint32, length int) ([]byte, error) {
	if length <= 0 || length > MaxLen {
		return nil, ErrBadLength
	}

	p := prk(masterSeed)
	in := info(domain, index, length)

	if length <= blockSize {
		full := primitives.HMACSHA512(p, in)
		out := make([]byte, length)
		copy(out, full)
		return out, nil
	}

	blocks := (length + blockSize - 1) / blockSize
	if blocks > maxBlocks {
		return nil, ErrBadLength
	}

	out := make([]byte, 0, blocks*blockSize)
	var t []byte
	for i := 1; i <= blocks; i++ {
		msg := make([]byte, 0, len(t)+len(in)+1)
		msg = append(msg, t...)
		msg = append(msg, in...)
		msg = append(msg, byte(i))
		t = primitives.HMACSHA512(p, msg)
		out = append(out, t...)
	}
	return out[:length], nil
}

// Multiple derives count independent keys of the given length, one
// per index 0..count-1, under the same domain.
func Multiple(masterSeed []byte, domain string, count int, length int) ([][]byte, error) {
	if count < 0 {
		return nil, ErrBadLength
	}
	out := make([][]byte, count)
	for i := 0; i < count; i++ {
		k, err := Key(masterSeed, domain, uint32(i), length)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

// ServiceIndex maps an arbitrary service/hostname string to a 32-bit
// index: the little-endian read of the first four bytes of
// SHA-256(service). Collisions are accepted as "good enough" — the
// only cost is key reuse across services that happen to collide.
func ServiceIndex(service string) uint32 {
	h := primitives.SHA256([]byte(service))
	return binary.LittleEndian.Uint32(h[:4])
}

// HostnameIndex is an alias of ServiceIndex: SSH hostnames and service
// names are mapped to indices by the identical rule.
func HostnameIndex(hostname string) uint32 {
	return ServiceIndex(hostname)
}

// TOTPServiceIndex maps a TOTP service name to a 32-bit index using a
// deliberately different rule from ServiceIndex: the little-endian
// read of the first four bytes of HMAC-SHA256(key=service, msg=empty).
// This asymmetry with ServiceIndex is intentional (spec §9) — do not
// unify the two call sites.
func TOTPServiceIndex(service string) uint32 {
	h := primitives.HMACSHA256([]byte(service), nil)
	return binary.LittleEndian.Uint32(h[:4])
}
