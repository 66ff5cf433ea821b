package vault

import (
	"time"

	"github.com/google/uuid"
)

// NotePatch carries the optional fields an UpdateNote call may change.
type NotePatch struct {
	Title       *string
	Content     *string
	Attachments []Attachment // nil means "leave unchanged"
}

// AddNote inserts a new Note, assigning an ID if empty and stamping
// Created/Modified to now.
func (s *Store) AddNote(n Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Created.IsZero() {
		n.Created = now
	}
	n.Modified = now

	s.vault.Notes = append(s.vault.Notes, n)
	s.touchLocked()
	if err := s.saveLocked(); err != nil {
		return Note{}, err
	}
	return n, nil
}

// GetNote returns the Note with the given id, or ErrNotFound.
func (s *Store) GetNote(id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.vault.Notes {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, ErrNotFound
}

// ListNotes returns a copy of every stored Note.
func (s *Store) ListNotes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.vault.Notes))
	copy(out, s.vault.Notes)
	return out
}

// UpdateNote applies patch to the Note identified by id, or returns
// ErrNotFound.
func (s *Store) UpdateNote(id string, patch NotePatch) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault.Notes {
		n := &s.vault.Notes[i]
		if n.ID != id {
			continue
		}
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.Attachments != nil {
			n.Attachments = patch.Attachments
		}
		n.Modified = time.Now().UTC()

		s.touchLocked()
		if err := s.saveLocked(); err != nil {
			return Note{}, err
		}
		return *n, nil
	}
	return Note{}, ErrNotFound
}

// DeleteNote removes the Note with the given id, or returns ErrNotFound.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault.Notes {
		if s.vault.Notes[i].ID != id {
			continue
		}
		s.vault.Notes = append(s.vault.Notes[:i], s.vault.Notes[i+1:]...)
		s.touchLocked()
		return s.saveLocked()
	}
	return ErrNotFound
}
