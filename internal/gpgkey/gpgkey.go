// Package gpgkey implements the OpenPGP-format signing-key generator
// (spec component C5). The output is NOT a conformant OpenPGP packet
// stream — it is a fixed, documented, keyforge-private ASCII-armored
// framing. It must be reproduced byte-for-byte by any compatible
// implementation, but real OpenPGP tooling cannot parse it.
package gpgkey

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/keyforge/keyforge/internal/derive"
	"github.com/keyforge/keyforge/internal/primitives"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Identity is the user metadata embedded in a generated GPG key.
type Identity struct {
	Name    string
	Email   string
	Comment string
}

// Options configures Generate.
type Options struct {
	Name    string
	Email   string
	Comment string
	Service string // domain-separation index source; "" uses index 0
}

// Key holds the generated GPG artefacts.
type Key struct {
	Identity    Identity
	KeyID       string // 16 uppercase hex chars
	Fingerprint string // 40 uppercase hex chars
	PublicArmor string
	PrivateArmor string
	PublicKey   ed25519.PublicKey
}

// ValidateIdentity applies the spec's advisory (non-blocking on key
// output) validation: name must be at least 2 characters, and email
// (if non-empty) must look like user@host.tld.
func ValidateIdentity(id Identity) error {
	if len(id.Name) < 2 {
		return errInvalidName
	}
	if id.Email != "" && !emailShape.MatchString(id.Email) {
		return errInvalidEmail
	}
	return nil
}

var errInvalidName = errorString("gpgkey: name must be at least 2 characters")
var errInvalidEmail = errorString("gpgkey: email does not look like user@host.tld")

type errorString string

func (e errorString) Error() string { return string(e) }

// Generate derives the Ed25519 keypair for (masterSeed, opts.Service)
// and produces the keyforge-private armor framing described in spec
// §4.5. Name/email default to "Keyforge User" / "user@keyforge.local"
// when unset.
func Generate(masterSeed []byte, opts Options) (*Key, error) {
	var index uint32
	if opts.Service != "" {
		index = derive.ServiceIndex(opts.Service)
	}

	priv32, err := derive.Key(masterSeed, derive.DomainGPG, index, ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(priv32)
	pub := priv.Public().(ed25519.PublicKey)

	id := Identity{
		Name:    opts.Name,
		Email:   opts.Email,
		Comment: opts.Comment,
	}
	if id.Name == "" {
		id.Name = "Keyforge User"
	}
	if id.Email == "" {
		id.Email = "user@keyforge.local"
	}

	sha1OfPub := primitives.SHA1(pub)
	keyID := strings.ToUpper(hex.EncodeToString(sha1OfPub[len(sha1OfPub)-8:]))

	fpInput := append(append([]byte{}, pub...), []byte(id.Name)...)
	fpInput = append(fpInput, []byte(id.Email)...)
	fingerprint := strings.ToUpper(hex.EncodeToString(primitives.SHA1(fpInput)))

	pubBody := append([]byte{0x99}, pub...)
	pubBody = append(pubBody, []byte(id.Name)...)
	pubBody = append(pubBody, []byte(id.Email)...)
	publicArmor := armor(pubBody, "PGP PUBLIC KEY BLOCK", 64)

	privBody := append([]byte{0x95}, priv32...)
	privBody = append(privBody, pub...)
	privBody = append(privBody, []byte(id.Name)...)
	privBody = append(privBody, []byte(id.Email)...)
	privateArmor := armor(privBody, "PGP PRIVATE KEY BLOCK", 64)

	return &Key{
		Identity:     id,
		KeyID:        keyID,
		Fingerprint:  fingerprint,
		PublicArmor:  publicArmor,
		PrivateArmor: privateArmor,
		PublicKey:    pub,
	}, nil
}

func armor(data []byte, label string, width int) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	out := &bytes.Buffer{}
	out.WriteString("-----BEGIN " + label + "-----\n")
	for i := 0; i < len(encoded); i += width {
		end := i + width
		if end > len(encoded) {
			end = len(encoded)
		}
		out.WriteString(encoded[i:end])
		out.WriteByte('\n')
	}
	out.WriteString("-----END " + label + "-----\n")
	return out.String()
}
