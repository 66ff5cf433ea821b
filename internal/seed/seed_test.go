package seed

import (
	"bytes"
	"testing"
)

func TestDeriveLength(t *testing.T) {
	s := Derive([]byte("correct horse battery staple"), "alice", 1)
	if len(s) != Length {
		t.Fatalf("want %d bytes, got %d", Length, len(s))
	}
}

func TestDeriveDeterministic(t *testing.T) {
	a := Derive([]byte("correct horse battery staple"), "alice", 1)
	b := Derive([]byte("correct horse battery staple"), "alice", 1)
	if !bytes.Equal(a, b) {
		t.Fatal("Derive is not deterministic for identical inputs")
	}
}

func TestDeriveVariesByUserLabel(t *testing.T) {
	alice := Derive([]byte("correct horse battery staple"), "alice", 1)
	bob := Derive([]byte("correct horse battery staple"), "bob", 1)
	if bytes.Equal(alice, bob) {
		t.Fatal("different user labels produced the same seed")
	}
}

func TestDeriveVariesByVersion(t *testing.T) {
	v1 := Derive([]byte("pw"), "alice", 1)
	v2 := Derive([]byte("pw"), "alice", 2)
	if bytes.Equal(v1, v2) {
		t.Fatal("different versions produced the same seed")
	}
}

func TestDeriveVariesByPassphrase(t *testing.T) {
	a := Derive([]byte("pw1"), "alice", 1)
	b := Derive([]byte("pw2"), "alice", 1)
	if bytes.Equal(a, b) {
		t.Fatal("different passphrases produced the same seed")
	}
}

func TestUserLabelCaseInsensitive(t *testing.T) {
	lower := Derive([]byte("pw"), "alice", 1)
	upper := Derive([]byte("pw"), "ALICE", 1)
	if !bytes.Equal(lower, upper) {
		t.Fatal("user label should be lower-cased before use")
	}
}

func TestEmptyPassphraseAccepted(t *testing.T) {
	s := Derive(nil, "alice", 1)
	if len(s) != Length {
		t.Fatalf("empty passphrase should still yield %d bytes, got %d", Length, len(s))
	}
}

func TestDefaultsApplied(t *testing.T) {
	withDefaults := Derive([]byte("pw"), "", 0)
	explicit := Derive([]byte("pw"), DefaultUserLabel, DefaultVersion)
	if !bytes.Equal(withDefaults, explicit) {
		t.Fatal("empty label/zero version should fall back to documented defaults")
	}
}

func TestSaltStringFormat(t *testing.T) {
	got := SaltString("Alice", 3)
	want := "keyforge:alice:v3"
	if got != want {
		t.Fatalf("salt string = %q, want %q", got, want)
	}
}
