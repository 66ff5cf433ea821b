// Package session provides the explicit, front-end-owned session
// object called for in spec §9's "global session state" design note:
// the core packages (seed, derive, vault, ...) hold no process-wide
// state of their own, so the CLI constructs one Session per
// invocation and is responsible for its lifetime, including scrubbing
// the master seed when the session ends.
package session

import (
	"github.com/keyforge/keyforge/internal/primitives"
	"github.com/keyforge/keyforge/internal/seed"
	"github.com/keyforge/keyforge/internal/vault"
)

// Session bundles a derived master seed with the vault Store opened
// from it. Every CLI command receives a *Session rather than reaching
// into package-level state.
type Session struct {
	MasterSeed []byte
	Store      *vault.Store

	closed bool
}

// Open derives the master seed from passphrase/userLabel and opens
// (or initialises) the vault at vaultPath under it.
func Open(vaultPath string, passphrase []byte, userLabel string) (*Session, error) {
	ms := seed.Derive(passphrase, userLabel, seed.DefaultVersion)

	store, err := vault.New(vaultPath, ms)
	if err != nil {
		primitives.Scrub(ms)
		return nil, err
	}

	return &Session{MasterSeed: ms, Store: store}, nil
}

// Close scrubs the session's master seed (spec §5 sensitive-memory
// policy). It is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	primitives.Scrub(s.MasterSeed)
	s.closed = true
}
