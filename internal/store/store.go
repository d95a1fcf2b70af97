// Package store holds the ordered sequence rows displayed by the canvas.
package store

import (
	"strings"
	"sync"
)

// Sequence is one immutable row of character data.
type Sequence struct {
	// ID is the row identifier supplied by the loader (FASTA header).
	ID string

	// Chars is the raw character data.
	Chars string

	// Upper is the uppercase-folded copy, used only for color lookup.
	Upper string

	// Length is len(Chars) cached for hot paths.
	Length int
}

// Store is an append-only collection of sequence rows.
// The longest row length is cached because ruler and zoom math read it
// on every repaint.
type Store struct {
	mu        sync.RWMutex
	rows      []Sequence
	maxLength int
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Add appends a row and returns its row index.
func (s *Store) Add(id, chars string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := Sequence{
		ID:     id,
		Chars:  chars,
		Upper:  strings.ToUpper(chars),
		Length: len(chars),
	}
	s.rows = append(s.rows, seq)
	if seq.Length > s.maxLength {
		s.maxLength = seq.Length
	}
	return len(s.rows) - 1
}

// Clear removes all rows and resets the cached maximum length.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.maxLength = 0
}

// RowCount returns the number of rows.
func (s *Store) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// MaxLength returns the cached longest row length.
func (s *Store) MaxLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxLength
}

// Row returns the row at the given index.
func (s *Store) Row(index int) (Sequence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.rows) {
		return Sequence{}, false
	}
	return s.rows[index], true
}

// Rows returns a copy of all rows in insertion order.
func (s *Store) Rows() []Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Sequence, len(s.rows))
	copy(out, s.rows)
	return out
}

// IDs returns the row identifiers in insertion order, for the header panel.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.ID
	}
	return out
}
