package vault

import (
	"path/filepath"
	"testing"

	"github.com/keyforge/keyforge/internal/vaultcodec"
)

func testSeed() []byte {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.kf")
	s, err := New(path, testSeed())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, path
}

func TestNewStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if got := len(s.ListPasswords()); got != 0 {
		t.Fatalf("fresh store has %d passwords, want 0", got)
	}
}

func TestAddPasswordRejectsDuplicateSite(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddPassword(Password{Site: "example.com", Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := s.AddPassword(Password{Site: "example.com", Username: "bob", Password: "pw2"})
	if err != ErrAlreadyExists {
		t.Fatalf("duplicate site add: got %v, want ErrAlreadyExists", err)
	}
}

func TestGetPasswordNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.GetPassword("nowhere.com"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdatePasswordHistoryInvariant(t *testing.T) {
	s, _ := newTestStore(t)
	added, err := s.AddPassword(Password{Site: "example.com", Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("AddPassword: %v", err)
	}
	if len(added.History) != 0 {
		t.Fatalf("freshly added password has history, want none")
	}

	newPW := "pw2"
	updated, err := s.UpdatePassword("example.com", PasswordPatch{Password: &newPW})
	if err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if updated.Password != "pw2" {
		t.Fatalf("password = %q, want pw2", updated.Password)
	}
	if len(updated.History) != 1 || updated.History[0].Password != "pw1" {
		t.Fatalf("history = %+v, want single entry holding pw1", updated.History)
	}

	// Updating to the same value again is not a change and must not
	// grow History.
	same := "pw2"
	again, err := s.UpdatePassword("example.com", PasswordPatch{Password: &same})
	if err != nil {
		t.Fatalf("UpdatePassword (no-op): %v", err)
	}
	if len(again.History) != 1 {
		t.Fatalf("no-op update grew history to %d entries", len(again.History))
	}
}

func TestDeletePassword(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddPassword(Password{Site: "example.com", Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("AddPassword: %v", err)
	}
	if err := s.DeletePassword("example.com"); err != nil {
		t.Fatalf("DeletePassword: %v", err)
	}
	if _, err := s.GetPassword("example.com"); err != ErrNotFound {
		t.Fatalf("GetPassword after delete: got %v, want ErrNotFound", err)
	}
	if err := s.DeletePassword("example.com"); err != ErrNotFound {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestSearchPasswords(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddPassword(Password{Site: "github.com", Username: "alice", Password: "a", Tags: []string{"work", "dev"}})
	s.AddPassword(Password{Site: "gitlab.com", Username: "bob", Password: "b", Tags: []string{"dev"}})
	s.AddPassword(Password{Site: "bank.com", Username: "alice", Password: "c", Tags: []string{"finance"}})

	byTag := s.SearchPasswords(SearchFilter{Tags: []string{"dev"}})
	if len(byTag) != 2 {
		t.Fatalf("tag search returned %d, want 2", len(byTag))
	}

	bySite := s.SearchPasswords(SearchFilter{Site: "git"})
	if len(bySite) != 2 {
		t.Fatalf("site substring search returned %d, want 2", len(bySite))
	}

	byUser := s.SearchPasswords(SearchFilter{Username: "alice"})
	if len(byUser) != 2 {
		t.Fatalf("username search returned %d, want 2", len(byUser))
	}

	combined := s.SearchPasswords(SearchFilter{Username: "alice", Tags: []string{"dev"}})
	if len(combined) != 1 || combined[0].Site != "github.com" {
		t.Fatalf("combined search = %+v, want only github.com", combined)
	}
}

func TestNoteCRUD(t *testing.T) {
	s, _ := newTestStore(t)
	n, err := s.AddNote(Note{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if n.ID == "" {
		t.Fatal("AddNote did not assign an ID")
	}

	newContent := "updated"
	updated, err := s.UpdateNote(n.ID, NotePatch{Content: &newContent})
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Content != "updated" {
		t.Fatalf("content = %q, want updated", updated.Content)
	}
	if !updated.Modified.After(updated.Created) && updated.Modified != updated.Created {
		t.Fatal("Modified should be set on update")
	}

	if err := s.DeleteNote(n.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := s.GetNote(n.ID); err != ErrNotFound {
		t.Fatalf("GetNote after delete: got %v, want ErrNotFound", err)
	}
}

func TestServiceConfigAddList(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddSSH(SSHEntry{Hostname: "example.com", PublicLine: "ssh-ed25519 AAAA...", Fingerprint: "SHA256:xxx"}); err != nil {
		t.Fatalf("AddSSH: %v", err)
	}
	if got := len(s.ListSSH()); got != 1 {
		t.Fatalf("ListSSH returned %d, want 1", got)
	}

	if _, err := s.AddGPG(GPGEntry{Name: "Alice", Email: "alice@example.com", KeyID: "ABC", Fingerprint: "xyz"}); err != nil {
		t.Fatalf("AddGPG: %v", err)
	}
	if got := len(s.ListGPG()); got != 1 {
		t.Fatalf("ListGPG returned %d, want 1", got)
	}

	if _, err := s.AddWallet(WalletEntry{Service: "default", BitcoinAddress: "bc1q...", EthereumAddress: "0x..."}); err != nil {
		t.Fatalf("AddWallet: %v", err)
	}
	if got := len(s.ListWallets()); got != 1 {
		t.Fatalf("ListWallets returned %d, want 1", got)
	}

	if _, err := s.AddTOTP(TOTPEntry{Service: "github.com", SecretB64: "aaaa", Algorithm: "SHA1", Digits: 6, Period: 30}); err != nil {
		t.Fatalf("AddTOTP: %v", err)
	}
	if got := len(s.ListTOTP()); got != 1 {
		t.Fatalf("ListTOTP returned %d, want 1", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	if _, err := s.AddPassword(Password{Site: "example.com", Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("AddPassword: %v", err)
	}
	if _, err := s.AddNote(Note{Title: "t", Content: "c"}); err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	reopened, err := New(path, testSeed())
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	if got := reopened.ListPasswords(); len(got) != 1 || got[0].Site != "example.com" {
		t.Fatalf("reopened passwords = %+v", got)
	}
	if got := reopened.ListNotes(); len(got) != 1 || got[0].Title != "t" {
		t.Fatalf("reopened notes = %+v", got)
	}
}

func TestLoadWrongSeedResetsToEmptyVault(t *testing.T) {
	s, path := newTestStore(t)
	if _, err := s.AddPassword(Password{Site: "example.com", Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("AddPassword: %v", err)
	}

	wrongSeed := make([]byte, 64)
	for i := range wrongSeed {
		wrongSeed[i] = 0xAA
	}
	reopened, err := New(path, wrongSeed)
	if err != nil {
		t.Fatalf("New (wrong seed): %v", err)
	}
	if got := len(reopened.ListPasswords()); got != 0 {
		t.Fatalf("wrong-seed open surfaced %d passwords, want 0 (AEAD should fail closed)", got)
	}
}

func TestValidateIntegrity(t *testing.T) {
	s, _ := newTestStore(t)
	ok, err := s.ValidateIntegrity()
	if err != nil {
		t.Fatalf("ValidateIntegrity: %v", err)
	}
	if !ok {
		t.Fatal("freshly saved vault should validate")
	}
}

func TestClearResetsVault(t *testing.T) {
	s, path := newTestStore(t)
	if _, err := s.AddPassword(Password{Site: "example.com", Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("AddPassword: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := len(s.ListPasswords()); got != 0 {
		t.Fatalf("cleared store has %d passwords, want 0", got)
	}

	reopened, err := New(path, testSeed())
	if err != nil {
		t.Fatalf("New (reopen after clear): %v", err)
	}
	if got := len(reopened.ListPasswords()); got != 0 {
		t.Fatalf("reopened-after-clear store has %d passwords, want 0", got)
	}
}

// TestDecodeTamperDetection exercises the same tamper-detection path
// Store.Load relies on: a single flipped ciphertext byte must not
// silently decode into a different (but well-formed) vault.
func TestDecodeTamperDetection(t *testing.T) {
	s, _ := newTestStore(t)
	vaultKey, err := vaultcodec.DeriveVaultKey(testSeed())
	if err != nil {
		t.Fatalf("DeriveVaultKey: %v", err)
	}

	envelope, err := vaultcodec.Encode(s.vault, vaultKey)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	envelope[len(envelope)-1] ^= 0xFF

	var v Vault
	if err := vaultcodec.Decode(envelope, vaultKey, &v); err != vaultcodec.ErrVaultCorrupt {
		t.Fatalf("Decode of tampered envelope: got %v, want ErrVaultCorrupt", err)
	}
}
