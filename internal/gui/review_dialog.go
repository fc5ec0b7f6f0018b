package gui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
	"codeberg.org/snonux/ankiaudio/internal/review"
)

// DialogReviewer presents retrieved candidates in a modal dialog and
// reports the user's decisions back to the processor. It also doubles as
// the pairing editor for the manual flow.
//
// Review and Edit are called from the processor's worker goroutine and
// block until the user closes the dialog; all widget work happens on the
// Fyne thread via fyne.Do.
type DialogReviewer struct {
	window fyne.Window
	media  *anki.MediaStore
	player *clipPlayer
}

// NewDialogReviewer creates a reviewer that opens its dialogs over window.
// media is used to play recordings already referenced by the note; it may
// be nil.
func NewDialogReviewer(window fyne.Window, media *anki.MediaStore) *DialogReviewer {
	return &DialogReviewer{
		window: window,
		media:  media,
		player: newClipPlayer(),
	}
}

// Close releases playback resources.
func (r *DialogReviewer) Close() {
	r.player.Close()
}

type reviewOutcome struct {
	entries []*retrieve.Entry
	err     error
}

// Review implements review.Reviewer.
func (r *DialogReviewer) Review(note *anki.Note, entries []*retrieve.Entry, hideText bool) ([]*retrieve.Entry, error) {
	if len(entries) == 0 {
		return nil, review.ErrNothingToReview
	}

	done := make(chan reviewOutcome, 1)
	fyne.Do(func() {
		r.showReviewDialog(note, entries, hideText, done)
	})
	outcome := <-done
	r.player.Stop()
	return outcome.entries, outcome.err
}

func (r *DialogReviewer) showReviewDialog(note *anki.Note, entries []*retrieve.Entry, hideText bool, done chan<- reviewOutcome) {
	choices := make([]*widget.RadioGroup, len(entries))
	rows := container.NewVBox()
	for i, entry := range entries {
		row, radio := r.buildEntryRow(note, entry, hideText)
		choices[i] = radio
		rows.Add(row)
		rows.Add(widget.NewSeparator())
	}

	scroll := container.NewScroll(rows)
	scroll.SetMinSize(fyne.NewSize(640, 360))

	finished := false
	d := dialog.NewCustomConfirm("Review pronunciations", "Apply", "Cancel", scroll,
		func(ok bool) {
			if finished {
				return
			}
			finished = true
			if !ok {
				done <- reviewOutcome{err: review.ErrCancelled}
				return
			}
			for i, entry := range entries {
				if dec, err := retrieve.ParseDecision(strings.ToLower(choices[i].Selected)); err == nil {
					entry.Decision = dec
				}
			}
			done <- reviewOutcome{entries: entries}
		}, r.window)

	// Closing the window counts as a cancel.
	d.SetOnClosed(func() {
		if !finished {
			finished = true
			done <- reviewOutcome{err: review.ErrCancelled}
		}
	})
	d.Show()
}

// buildEntryRow builds the widgets for one candidate: description, play
// buttons and the decision radio group.
func (r *DialogReviewer) buildEntryRow(note *anki.Note, entry *retrieve.Entry, hideText bool) (fyne.CanvasObject, *widget.RadioGroup) {
	text := entry.DisplayText
	if hideText {
		// Side flow: keep the answer hidden, identify the row by its
		// destination field only.
		text = "(hidden)"
	}
	label := widget.NewLabel(fmt.Sprintf("%s — %s", entry.DestField, text))
	label.TextStyle = fyne.TextStyle{Bold: true}

	playNew := ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		ext := strings.TrimPrefix(filepath.Ext(entry.Filename), ".")
		if ext == "" {
			ext = "mp3"
		}
		if err := r.player.PlayData(entry.Data, ext); err != nil {
			dialog.ShowError(err, r.window)
		}
	})
	playNew.SetToolTip(entryTooltip(entry))

	controls := container.NewHBox(playNew)

	// Offer the recording currently on the note for comparison, if any.
	if old := r.currentAudioPath(note, entry.DestField); old != "" {
		playOld := ttwidget.NewButtonWithIcon("", theme.HistoryIcon(), func() {
			if err := r.player.PlayFile(old); err != nil {
				dialog.ShowError(err, r.window)
			}
		})
		playOld.SetToolTip("Play recording currently on the note")
		controls.Add(playOld)
	}

	// Blacklisting only makes sense for catalogue recordings that carry
	// a content hash; synthesized audio never does.
	options := []string{"Add", "Keep", "Delete"}
	if entry.Hash != "" {
		options = append(options, "Blacklist")
	}
	radio := widget.NewRadioGroup(options, nil)
	radio.Horizontal = true
	radio.Required = true
	radio.SetSelected(titled(entry.Decision.String()))

	row := container.NewVBox(
		container.NewBorder(nil, nil, nil, controls, label),
		radio,
	)
	return row, radio
}

// currentAudioPath returns the on-disk path of the first recording the
// destination field already references, or "".
func (r *DialogReviewer) currentAudioPath(note *anki.Note, destField string) string {
	if r.media == nil {
		return ""
	}
	names := anki.SoundFilenames(note.Get(destField))
	if len(names) == 0 {
		return ""
	}
	return filepath.Join(r.media.Dir(), names[0])
}

// entryTooltip describes where a candidate came from.
func entryTooltip(entry *retrieve.Entry) string {
	parts := []string{
		fmt.Sprintf("%s → %s", entry.SourceField, entry.DestField),
		"Source: " + entry.SourceName,
	}
	keys := make([]string, 0, len(entry.Extras))
	for k := range entry.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+entry.Extras[k])
	}
	return strings.Join(parts, "\n")
}

// titled upper-cases the first letter so decision names line up with the
// radio options.
func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
