// Package commit applies reviewed decisions: storing audio in the media
// folder, putting sound references on the note, and extending the
// blacklist. Individual entries never abort a commit.
package commit

import (
	"fmt"
	"os"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
)

// Blacklist is the part of the blacklist store the committer appends to.
type Blacklist interface {
	Add(hash string) error
}

// Outcome summarizes what a commit did.
type Outcome struct {
	Added       int
	Kept        int
	Deleted     int
	Blacklisted int
	Failed      int
}

// Total returns the number of entries processed.
func (o Outcome) Total() int {
	return o.Added + o.Kept + o.Deleted + o.Blacklisted + o.Failed
}

// Committer applies decided candidates to a note and its media folder.
// The note is mutated in place; the caller saves it back to the
// collection.
type Committer struct {
	media     *anki.MediaStore
	blacklist Blacklist
}

// NewCommitter creates a committer. A nil blacklist turns blacklist
// decisions into plain deletes.
func NewCommitter(media *anki.MediaStore, bl Blacklist) *Committer {
	return &Committer{media: media, blacklist: bl}
}

// Apply dispatches every entry on its decision. Entry-level failures are
// counted and logged, never propagated.
func (c *Committer) Apply(note *anki.Note, entries []*retrieve.Entry) Outcome {
	var out Outcome
	for _, e := range entries {
		switch e.Decision {
		case retrieve.DecisionAdd:
			name, err := c.media.Save(e.Data, e.Filename)
			if err != nil {
				warn(e, err)
				out.Failed++
				continue
			}
			if err := note.Set(e.DestField, anki.AppendSound(note.Get(e.DestField), name)); err != nil {
				warn(e, err)
				out.Failed++
				continue
			}
			out.Added++

		case retrieve.DecisionKeep:
			if _, err := c.media.Save(e.Data, e.Filename); err != nil {
				warn(e, err)
				out.Failed++
				continue
			}
			out.Kept++

		case retrieve.DecisionDelete:
			out.Deleted++

		case retrieve.DecisionBlacklist:
			if e.Hash != "" && c.blacklist != nil {
				if err := c.blacklist.Add(e.Hash); err != nil {
					warn(e, err)
					out.Failed++
					continue
				}
			}
			out.Blacklisted++
		}
	}
	return out
}

func warn(e *retrieve.Entry, err error) {
	fmt.Fprintf(os.Stderr, "Warning: failed to commit %q for field %q: %v\n",
		e.Filename, e.DestField, err)
}
