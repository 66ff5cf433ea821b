package vault

import (
	"time"

	"github.com/google/uuid"
)

// AddSSH records the public metadata of a generated SSH key. Spec
// §4.9 requires no update/delete for service config entries.
func (s *Store) AddSSH(e SSHEntry) (SSHEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	s.vault.Config.Services.SSH = append(s.vault.Config.Services.SSH, e)
	s.touchLocked()
	if err := s.saveLocked(); err != nil {
		return SSHEntry{}, err
	}
	return e, nil
}

// ListSSH returns a copy of every recorded SSH entry.
func (s *Store) ListSSH() []SSHEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SSHEntry, len(s.vault.Config.Services.SSH))
	copy(out, s.vault.Config.Services.SSH)
	return out
}

// AddGPG records the public metadata of a generated GPG key.
func (s *Store) AddGPG(e GPGEntry) (GPGEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	s.vault.Config.Services.GPG = append(s.vault.Config.Services.GPG, e)
	s.touchLocked()
	if err := s.saveLocked(); err != nil {
		return GPGEntry{}, err
	}
	return e, nil
}

// ListGPG returns a copy of every recorded GPG entry.
func (s *Store) ListGPG() []GPGEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GPGEntry, len(s.vault.Config.Services.GPG))
	copy(out, s.vault.Config.Services.GPG)
	return out
}

// AddWallet records the public addresses of a generated wallet.
func (s *Store) AddWallet(e WalletEntry) (WalletEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	s.vault.Config.Services.Wallets = append(s.vault.Config.Services.Wallets, e)
	s.touchLocked()
	if err := s.saveLocked(); err != nil {
		return WalletEntry{}, err
	}
	return e, nil
}

// ListWallets returns a copy of every recorded wallet entry.
func (s *Store) ListWallets() []WalletEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]WalletEntry, len(s.vault.Config.Services.Wallets))
	copy(out, s.vault.Config.Services.Wallets)
	return out
}

// AddTOTP records a provisioned TOTP secret.
func (s *Store) AddTOTP(e TOTPEntry) (TOTPEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	s.vault.Config.Services.TOTP = append(s.vault.Config.Services.TOTP, e)
	s.touchLocked()
	if err := s.saveLocked(); err != nil {
		return TOTPEntry{}, err
	}
	return e, nil
}

// ListTOTP returns a copy of every recorded TOTP entry.
func (s *Store) ListTOTP() []TOTPEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TOTPEntry, len(s.vault.Config.Services.TOTP))
	copy(out, s.vault.Config.Services.TOTP)
	return out
}
