package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/review"
)

type editOutcome struct {
	pairings []*field.Pairing
	lang     string
	err      error
}

// Edit implements review.PairingEditor. The manual flow shows the resolved
// pairings before any lookup runs so the user can fix up text the naming
// convention picked badly, or correct the detected language.
func (r *DialogReviewer) Edit(pairings []*field.Pairing, lang string) ([]*field.Pairing, string, error) {
	done := make(chan editOutcome, 1)
	fyne.Do(func() {
		r.showEditDialog(pairings, lang, done)
	})
	outcome := <-done
	return outcome.pairings, outcome.lang, outcome.err
}

func (r *DialogReviewer) showEditDialog(pairings []*field.Pairing, lang string, done chan<- editOutcome) {
	langEntry := widget.NewEntry()
	langEntry.SetText(lang)

	form := widget.NewForm(widget.NewFormItem("Language", langEntry))

	type rowEntries struct {
		text    *widget.Entry
		reading *widget.Entry
	}
	rows := make([]rowEntries, len(pairings))
	for i, p := range pairings {
		label := fmt.Sprintf("%s → %s", p.SourceField, p.DestField)
		if p.Readings {
			base := widget.NewEntry()
			base.SetText(p.Base)
			reading := widget.NewEntry()
			reading.SetText(p.Reading)
			rows[i] = rowEntries{text: base, reading: reading}
			form.Append(label, base)
			form.Append("    reading", reading)
		} else {
			text := widget.NewEntry()
			text.SetText(p.Text)
			rows[i] = rowEntries{text: text}
			form.Append(label, text)
		}
	}

	scroll := container.NewScroll(form)
	scroll.SetMinSize(fyne.NewSize(560, 300))

	finished := false
	d := dialog.NewCustomConfirm("Edit lookup text", "Continue", "Cancel", scroll,
		func(ok bool) {
			if finished {
				return
			}
			finished = true
			if !ok {
				done <- editOutcome{err: review.ErrCancelled}
				return
			}
			for i, p := range pairings {
				if p.Readings {
					p.Base = rows[i].text.Text
					p.Reading = rows[i].reading.Text
				} else {
					p.Text = rows[i].text.Text
				}
			}
			done <- editOutcome{pairings: pairings, lang: langEntry.Text}
		}, r.window)

	d.SetOnClosed(func() {
		if !finished {
			finished = true
			done <- editOutcome{err: review.ErrCancelled}
		}
	})
	d.Show()
}
