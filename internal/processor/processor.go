package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/commit"
	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
	"codeberg.org/snonux/ankiaudio/internal/review"
)

// Status is the terminal state of a download flow.
type Status int

const (
	// StatusCompleted means commit ran, possibly over zero entries.
	StatusCompleted Status = iota
	// StatusCancelled means the user aborted the review step. No side
	// effects, no message.
	StatusCancelled
	// StatusEmpty means nothing was resolved or retrieved. The note is
	// untouched; callers show a lightweight notice.
	StatusEmpty
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusEmpty:
		return "failed-empty"
	default:
		return "unknown"
	}
}

// Result is the outcome of one download flow run.
type Result struct {
	Status  Status
	Outcome commit.Outcome
}

// Processor runs the download flows against one open collection.
type Processor struct {
	col        *anki.Collection
	fieldCfg   *field.Config
	resolver   *field.Resolver
	aggregator *retrieve.Aggregator
	committer  *commit.Committer

	reviewer review.Reviewer
	editor   review.PairingEditor

	// LangOverride forces the language code instead of detecting it from
	// deck and note-type names.
	LangOverride string

	// ReviewSide enables the interactive review (with hidden source
	// text) for the side flow. Off by default so active recall leaks
	// nothing.
	ReviewSide bool
}

// New creates a processor over an open collection.
func New(col *anki.Collection, fieldCfg *field.Config, resolver *field.Resolver,
	aggregator *retrieve.Aggregator, committer *commit.Committer) *Processor {
	if fieldCfg == nil {
		fieldCfg = field.DefaultConfig()
	}
	return &Processor{
		col:        col,
		fieldCfg:   fieldCfg,
		resolver:   resolver,
		aggregator: aggregator,
		committer:  committer,
	}
}

// SetReviewer installs the interactive reviewer used by the manual flow
// (and, when enabled, the side flow).
func (p *Processor) SetReviewer(r review.Reviewer) {
	p.reviewer = r
}

// SetPairingEditor installs the editor the manual flow runs before
// retrieval.
func (p *Processor) SetPairingEditor(e review.PairingEditor) {
	p.editor = e
}

// DownloadForSide downloads audio for the audio fields referenced by the
// visible half of one card.
func (p *Processor) DownloadForSide(ctx context.Context, cardID int64, side anki.CardSide) (Result, error) {
	card, err := p.col.Card(cardID)
	if err != nil {
		return Result{}, err
	}
	note, err := p.col.Note(card.NoteID)
	if err != nil {
		return Result{}, err
	}
	tmpl, err := p.col.TemplateText(card, side)
	if err != nil {
		return Result{}, err
	}

	destFields := field.ScanTemplate(tmpl, note, p.fieldCfg)
	pairings := p.resolveAll(note, destFields)

	lang := anki.DetectLanguage(p.col.DeckName(card.DeckID), note.Model.Name, p.LangOverride)

	reviewer := review.Reviewer(review.AutoReviewer{})
	if p.ReviewSide && p.reviewer != nil {
		reviewer = p.reviewer
	}
	return p.download(ctx, note, pairings, lang, reviewer, true)
}

// DownloadForNote downloads audio for every audio field of a note. With
// manual set, the resolved pairings are shown for editing first and each
// candidate is reviewed interactively.
func (p *Processor) DownloadForNote(ctx context.Context, noteID int64, manual bool) (Result, error) {
	note, err := p.col.Note(noteID)
	if err != nil {
		return Result{}, err
	}

	destFields := p.noteDestFields(note)
	pairings := p.resolveAll(note, destFields)

	lang := p.noteLanguage(note)

	if manual && p.editor != nil {
		edited, editedLang, err := p.editor.Edit(pairings, lang)
		if err != nil {
			if errors.Is(err, review.ErrCancelled) {
				return Result{Status: StatusCancelled}, nil
			}
			return Result{}, err
		}
		pairings, lang = edited, editedLang
	}

	reviewer := review.Reviewer(review.AutoReviewer{})
	if manual && p.reviewer != nil {
		reviewer = p.reviewer
	}
	return p.download(ctx, note, pairings, lang, reviewer, false)
}

// download runs retrieval, review and commit over resolved pairings.
func (p *Processor) download(ctx context.Context, note *anki.Note, pairings []*field.Pairing,
	lang string, reviewer review.Reviewer, hideText bool) (Result, error) {

	entries := p.aggregator.Retrieve(ctx, pairings, lang)

	decided, err := reviewer.Review(note, entries, hideText)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNothingToReview):
			return Result{Status: StatusEmpty}, nil
		case errors.Is(err, review.ErrCancelled):
			return Result{Status: StatusCancelled}, nil
		default:
			// Unknown failure classes propagate, they are not ours to
			// swallow.
			return Result{}, err
		}
	}

	outcome := p.committer.Apply(note, decided)
	if err := p.col.SaveNote(note); err != nil {
		return Result{}, err
	}
	return Result{Status: StatusCompleted, Outcome: outcome}, nil
}

// resolveAll resolves generic pairings for all destination fields and, for
// note types that opt into readings, the reading pairings as well.
// Resolution failures are skipped; they only mean a field does not follow
// the naming convention.
func (p *Processor) resolveAll(note *anki.Note, destFields []string) []*field.Pairing {
	var pairings []*field.Pairing
	for _, dest := range destFields {
		pairing, err := p.resolver.Resolve(note, dest, false)
		if err != nil {
			if !errors.Is(err, field.ErrNoSourceField) {
				fmt.Fprintf(os.Stderr, "Warning: resolving %q: %v\n", dest, err)
			}
			continue
		}
		pairings = append(pairings, pairing)
	}

	if anki.IsJapaneseModel(note.Model.Name) {
		for _, dest := range destFields {
			pairing, err := p.resolver.Resolve(note, dest, true)
			if err != nil {
				continue
			}
			pairings = append(pairings, pairing)
		}
	}
	return pairings
}

// noteDestFields returns every note field whose name contains a marker
// key, in marker order then field order.
func (p *Processor) noteDestFields(note *anki.Note) []string {
	var dests []string
	seen := make(map[string]bool)
	for _, marker := range p.fieldCfg.MarkerKeys {
		for _, fn := range note.FieldNames() {
			if seen[fn] {
				continue
			}
			if strings.Contains(strings.ToLower(fn), marker) {
				dests = append(dests, fn)
				seen[fn] = true
			}
		}
	}
	return dests
}

// noteLanguage detects the language via the note's first card's deck,
// falling back to the note type name alone for cardless notes.
func (p *Processor) noteLanguage(note *anki.Note) string {
	deckName := ""
	if card, err := p.col.FirstCard(note.ID); err == nil {
		deckName = p.col.DeckName(card.DeckID)
	}
	return anki.DetectLanguage(deckName, note.Model.Name, p.LangOverride)
}
