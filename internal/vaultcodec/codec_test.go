package vaultcodec

import (
	"testing"

	"github.com/keyforge/keyforge/internal/primitives"
)

type sample struct {
	A string
	B int
}

func testKey(t *testing.T) []byte {
	t.Helper()
	k, err := primitives.Random(32)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key := testKey(t)
	in := sample{A: "hello", B: 42}

	envelope, err := Encode(in, key)
	if err != nil {
		t.Fatal(err)
	}

	var out sample
	if err := Decode(envelope, key, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestEnvelopeFrameShape(t *testing.T) {
	key := testKey(t)
	envelope, err := Encode(sample{A: "x", B: 1}, key)
	if err != nil {
		t.Fatal(err)
	}
	if envelope[0] != 12 {
		t.Fatalf("nonce_len byte should be 12, got %d", envelope[0])
	}
	if envelope[13] != 16 {
		t.Fatalf("tag_len byte should be 16, got %d", envelope[13])
	}
	if len(envelope) < 30 {
		t.Fatalf("envelope too short: %d bytes", len(envelope))
	}
}

func TestDecodeWrongKeyFails(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	envelope, err := Encode(sample{A: "x", B: 1}, key)
	if err != nil {
		t.Fatal(err)
	}
	var out sample
	if err := Decode(envelope, other, &out); err != ErrVaultCorrupt {
		t.Fatalf("want ErrVaultCorrupt, got %v", err)
	}
}

func TestDecodeTamperedCiphertextFails(t *testing.T) {
	key := testKey(t)
	envelope, err := Encode(sample{A: "x", B: 1}, key)
	if err != nil {
		t.Fatal(err)
	}
	envelope[len(envelope)-1] ^= 0xFF

	var out sample
	if err := Decode(envelope, key, &out); err != ErrVaultCorrupt {
		t.Fatalf("want ErrVaultCorrupt, got %v", err)
	}
}

func TestDecodeTamperedNonceFails(t *testing.T) {
	key := testKey(t)
	envelope, err := Encode(sample{A: "x", B: 1}, key)
	if err != nil {
		t.Fatal(err)
	}
	envelope[1] ^= 0xFF

	var out sample
	if err := Decode(envelope, key, &out); err != ErrVaultCorrupt {
		t.Fatalf("want ErrVaultCorrupt, got %v", err)
	}
}

func TestDecodeTamperedTagFails(t *testing.T) {
	key := testKey(t)
	envelope, err := Encode(sample{A: "x", B: 1}, key)
	if err != nil {
		t.Fatal(err)
	}
	envelope[14] ^= 0xFF

	var out sample
	if err := Decode(envelope, key, &out); err != ErrVaultCorrupt {
		t.Fatalf("want ErrVaultCorrupt, got %v", err)
	}
}

func TestDecodeTruncatedEnvelopeFails(t *testing.T) {
	var out sample
	if err := Decode([]byte{1, 2, 3}, testKey(t), &out); err != ErrVaultCorrupt {
		t.Fatalf("want ErrVaultCorrupt, got %v", err)
	}
}

func TestDeriveVaultKeyDeterministic(t *testing.T) {
	seed := make([]byte, 64)
	a, err := DeriveVaultKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DeriveVaultKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 {
		t.Fatalf("want 32 bytes, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("DeriveVaultKey is not deterministic")
		}
	}
}
