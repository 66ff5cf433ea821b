package totp

import (
	"bytes"
	"testing"
)

func zeroSeed() []byte { return make([]byte, 64) }

func TestDeriveSecretDeterministic(t *testing.T) {
	seed := zeroSeed()
	a, err := DeriveSecret(seed, "github.com")
	if err != nil {
		t.Fatal(err)
	}
	b, err := DeriveSecret(seed, "github.com")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("DeriveSecret is not deterministic")
	}
	if len(a) != SecretLen {
		t.Fatalf("want %d bytes, got %d", SecretLen, len(a))
	}
}

func TestDeriveSecretDiffersByService(t *testing.T) {
	seed := zeroSeed()
	a, _ := DeriveSecret(seed, "github.com")
	b, _ := DeriveSecret(seed, "gitlab.com")
	if bytes.Equal(a, b) {
		t.Fatal("distinct services produced the same secret")
	}
}

func TestCodeRFC6238KnownVector(t *testing.T) {
	// RFC 6238 Appendix B test vector: 20-byte SHA1 secret "12345678901234567890",
	// time 59 -> code "94287082" at 8 digits.
	secret := []byte("12345678901234567890")
	code, err := Code(secret, 59, SHA1, 8, 30)
	if err != nil {
		t.Fatal(err)
	}
	if code != "94287082" {
		t.Fatalf("want 94287082, got %s", code)
	}
}

func TestCodeDeterministicAndPeriodBoundary(t *testing.T) {
	secret := []byte("12345678901234567890")
	a, _ := Code(secret, 59, SHA1, 8, 30)
	b, _ := Code(secret, 0, SHA1, 8, 30)
	if a == b {
		t.Fatal("codes at different 30s windows should usually differ")
	}
	c, _ := Code(secret, 29, SHA1, 8, 30)
	if b != c {
		t.Fatal("codes within the same 30s window must match")
	}
}

func TestCodeValidatesDigitsAndPeriod(t *testing.T) {
	secret := []byte("12345678901234567890")
	if _, err := Code(secret, 0, SHA1, 7, 30); err != ErrInvalidDigits {
		t.Fatalf("want ErrInvalidDigits, got %v", err)
	}
	if _, err := Code(secret, 0, SHA1, 6, 45); err != ErrInvalidPeriod {
		t.Fatalf("want ErrInvalidPeriod, got %v", err)
	}
}

func TestDisplayInsertsSpace(t *testing.T) {
	if got := Display("123456"); got != "123 456" {
		t.Fatalf("want '123 456', got %q", got)
	}
}

func TestBase32RoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	encoded := Base32Encode(data)
	if len(encoded)%8 != 0 {
		t.Fatalf("base32 output should be padded to multiple of 8, got %q", encoded)
	}
	decoded, err := Base32Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, decoded) {
		t.Fatal("base32 round trip mismatch")
	}
}
