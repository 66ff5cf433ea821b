// Package sshkey implements the SSH signing-key generator (spec
// component C4): a deterministic Ed25519 keypair per (master seed,
// hostname), framed as OpenSSH public/private key text and fingerprinted
// per RFC 4251/8709 conventions.
package sshkey

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/binary"

	"github.com/keyforge/keyforge/internal/derive"
	"github.com/keyforge/keyforge/internal/primitives"
)

// checkint is the fixed OpenSSH-v1 "checkint" value used in both
// checkint fields of the private-key section. Any value works for
// OpenSSH's own consistency check; keyforge fixes it for determinism.
const checkint uint32 = 0x12345678

// Key holds the generated SSH artefacts for one (seed, hostname) pair.
type Key struct {
	PublicLine string // "ssh-ed25519 <base64 blob> <comment>"
	PrivatePEM string // OpenSSH v1 PEM-style private key text
	Fingerprint string // "SHA256:<base64-nopad>"
	PublicKey  ed25519.PublicKey
}

// Generate derives the Ed25519 keypair for (masterSeed, hostname) and
// produces its OpenSSH framings. hostname == "" uses index 0 (the
// default identity); otherwise index = derive.HostnameIndex(hostname).
func Generate(masterSeed []byte, hostname string) (*Key, error) {
	var index uint32
	if hostname != "" {
		index = derive.HostnameIndex(hostname)
	}

	privSeed, err := derive.Key(masterSeed, derive.DomainSSH, index, ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(privSeed)
	pub := priv.Public().(ed25519.PublicKey)

	blob := publicKeyBlob(pub)
	comment := "keyforge"
	if hostname != "" {
		comment = "keyforge@" + hostname
	}
	publicLine := "ssh-ed25519 " + base64.StdEncoding.EncodeToString(blob) + " " + comment

	privatePEM := encodePrivateKey(pub, priv, blob)

	fpHash := primitives.SHA256(pub)
	fingerprint := "SHA256:" + base64.RawStdEncoding.EncodeToString(fpHash)

	return &Key{
		PublicLine:  publicLine,
		PrivatePEM:  privatePEM,
		Fingerprint: fingerprint,
		PublicKey:   pub,
	}, nil
}

// publicKeyBlob builds the SSH wire-format public key blob:
// u32be(len("ssh-ed25519")) || "ssh-ed25519" || u32be(32) || pub.
func publicKeyBlob(pub ed25519.PublicKey) []byte {
	buf := &bytes.Buffer{}
	writeSSHString(buf, []byte("ssh-ed25519"))
	writeSSHString(buf, pub)
	return buf.Bytes()
}

func writeSSHString(buf *bytes.Buffer, s []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	buf.Write(lenBuf[:])
	buf.Write(s)
}

// encodePrivateKey builds the OpenSSH v1 private-key file exactly per
// spec §4.4: literal magic, "none"/"none"/"" cipher+kdf+kdfoptions,
// one key, the public blob, then the length-prefixed private section
// (checkint||checkint||"ssh-ed25519"||pub||priv||pub||comment""),
// padded to a multiple of 8 with bytes 1,2,3,....
func encodePrivateKey(pub ed25519.PublicKey, priv ed25519.PrivateKey, pubBlob []byte) string {
	body := &bytes.Buffer{}
	body.WriteString("openssh-key-v1\x00")
	writeSSHString(body, []byte("none")) // cipher
	writeSSHString(body, []byte("none")) // kdf
	writeSSHString(body, []byte(""))     // kdfoptions
	binary.Write(body, binary.BigEndian, uint32(1))
	writeSSHString(body, pubBlob)

	priv32 := priv[:32] // ed25519 seed portion
	privSection := &bytes.Buffer{}
	binary.Write(privSection, binary.BigEndian, checkint)
	binary.Write(privSection, binary.BigEndian, checkint)
	writeSSHString(privSection, []byte("ssh-ed25519"))
	writeSSHString(privSection, pub)
	combined := append(append([]byte{}, priv32...), pub...)
	writeSSHString(privSection, combined)
	writeSSHString(privSection, []byte("")) // comment

	pad := (8 - privSection.Len()%8) % 8
	for i := 1; i <= pad; i++ {
		privSection.WriteByte(byte(i))
	}

	writeSSHString(body, privSection.Bytes())

	return wrapPEM(body.Bytes(), "OPENSSH PRIVATE KEY", 70)
}

func wrapPEM(data []byte, label string, width int) string {
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
