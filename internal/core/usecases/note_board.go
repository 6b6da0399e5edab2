package usecases

import (
	"sync"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// NoteBoard is the note history shared by every chat call for the lifetime
// of the process. It is append-only and guarded by a single mutex; the only
// way to read or grow it is the atomic Exchange, so two concurrent notes at
// the same location can never both miss each other, and a note can never be
// reflected back to its own sender.
type NoteBoard struct {
	mu    sync.Mutex
	notes []domain.RouteNote
}

// NewNoteBoard creates an empty board.
func NewNoteBoard() *NoteBoard {
	return &NoteBoard{}
}

// Exchange scans the history for notes at exactly the incoming note's
// location, then appends the incoming note, as one indivisible step.
// The matches are returned in insertion order as a copy owned by the
// caller, so streaming them back never happens under the lock.
func (b *NoteBoard) Exchange(n domain.RouteNote) []domain.RouteNote {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matches []domain.RouteNote
	for _, prev := range b.notes {
		if prev.Location == n.Location {
			matches = append(matches, prev)
		}
	}
	b.notes = append(b.notes, n)
	return matches
}

// Len returns the number of notes stored so far.
func (b *NoteBoard) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.notes)
}
