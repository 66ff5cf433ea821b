package vault

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PasswordPatch carries the optional fields an UpdatePassword call may
// change; nil/zero-value fields are left untouched except where noted.
type PasswordPatch struct {
	Username *string
	Password *string
	Notes    *string
	Tags     []string // nil means "leave unchanged"; non-nil (incl. empty) replaces
}

// SearchFilter narrows ListPasswords results (spec §4.9 search).
type SearchFilter struct {
	Tags     []string
	Site     string
	Username string
}

// AddPassword inserts a new Password. It returns ErrAlreadyExists if
// p.Site duplicates an existing record (spec invariant: unique site).
// p.ID is assigned if empty; Created/Modified default to now.
func (s *Store) AddPassword(p Password) (Password, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vault.Passwords {
		if existing.Site == p.Site {
			return Password{}, ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Created.IsZero() {
		p.Created = now
	}
	p.Modified = now

	s.vault.Passwords = append(s.vault.Passwords, p)
	s.touchLocked()
	if err := s.saveLocked(); err != nil {
		return Password{}, err
	}
	return p, nil
}

// GetPassword returns the Password for site, or ErrNotFound.
func (s *Store) GetPassword(site string) (Password, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.vault.Passwords {
		if p.Site == site {
			return p, nil
		}
	}
	return Password{}, ErrNotFound
}

// ListPasswords returns a copy of every stored Password.
func (s *Store) ListPasswords() []Password {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Password, len(s.vault.Passwords))
	copy(out, s.vault.Passwords)
	return out
}

// UpdatePassword applies patch to the Password identified by site. If
// patch.Password actually changes the stored value, the prior value is
// prepended to History (spec invariant). Returns ErrNotFound if site
// is absent.
func (s *Store) UpdatePassword(site string, patch PasswordPatch) (Password, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault.Passwords {
		p := &s.vault.Passwords[i]
		if p.Site != site {
			continue
		}

		now := time.Now().UTC()
		if patch.Username != nil {
			p.Username = *patch.Username
		}
		if patch.Notes != nil {
			p.Notes = *patch.Notes
		}
		if patch.Tags != nil {
			p.Tags = patch.Tags
		}
		if patch.Password != nil && *patch.Password != p.Password {
			p.History = append([]PasswordHistoryEntry{{Password: p.Password, Changed: now}}, p.History...)
			p.Password = *patch.Password
		}
		p.Modified = now

		s.touchLocked()
		if err := s.saveLocked(); err != nil {
			return Password{}, err
		}
		return *p, nil
	}
	return Password{}, ErrNotFound
}

// DeletePassword removes the Password for site, or returns ErrNotFound.
func (s *Store) DeletePassword(site string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault.Passwords {
		if s.vault.Passwords[i].Site != site {
			continue
		}
		s.vault.Passwords = append(s.vault.Passwords[:i], s.vault.Passwords[i+1:]...)
		s.touchLocked()
		return s.saveLocked()
	}
	return ErrNotFound
}

// SearchPasswords returns every Password matching all non-zero fields
// of filter: every requested tag must be present, Site/Username are
// substring matches.
func (s *Store) SearchPasswords(filter SearchFilter) []Password {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Password
	for _, p := range s.vault.Passwords {
		if filter.Site != "" && !strings.Contains(p.Site, filter.Site) {
			continue
		}
		if filter.Username != "" && !strings.Contains(p.Username, filter.Username) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAllTags(p.Tags, filter.Tags) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAllTags(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, t := range want {
		if !set[t] {
			return false
		}
	}
	return true
}
