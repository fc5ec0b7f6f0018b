// Package review collects the user's disposition for retrieved audio
// candidates. The GUI supplies an interactive reviewer; non-interactive
// flows use the policy defaults unchanged.
package review

import (
	"errors"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
)

// ErrNothingToReview means retrieval produced no candidates. Surfaced to
// the user as a transient notice, not an error dialog.
var ErrNothingToReview = errors.New("nothing downloaded")

// ErrCancelled means the user aborted the interactive step. The operation
// stops silently, with no side effects and no notice.
var ErrCancelled = errors.New("user cancel")

// Reviewer presents candidates and returns them with decisions set. The
// hideText flag suppresses display of the source text to limit what a
// card review leaks ahead of the answer.
type Reviewer interface {
	Review(note *anki.Note, entries []*retrieve.Entry, hideText bool) ([]*retrieve.Entry, error)
}

// PairingEditor lets the manual flow adjust resolved text and the
// language code before any lookup is issued.
type PairingEditor interface {
	Edit(pairings []*field.Pairing, lang string) ([]*field.Pairing, string, error)
}

// AutoReviewer accepts every candidate with its policy default. Used by
// the non-interactive flows.
type AutoReviewer struct{}

// Review returns the entries unchanged, or ErrNothingToReview when there
// are none.
func (AutoReviewer) Review(_ *anki.Note, entries []*retrieve.Entry, _ bool) ([]*retrieve.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNothingToReview
	}
	return entries, nil
}
