package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/processor"
)

// RunReviewSession runs one download flow with the review dialogs
// attached, without the full application window. The CLI uses this for
// manual runs: the flow executes on a worker goroutine while the Fyne
// event loop serves the dialogs, and the session ends when the flow
// returns.
//
// Must be called from the main goroutine.
func RunReviewSession(proc *processor.Processor, media *anki.MediaStore,
	flow func(context.Context) (processor.Result, error)) (processor.Result, error) {

	myApp := app.NewWithID("org.codeberg.snonux.ankiaudio")
	window := myApp.NewWindow("AnkiAudio - Review")
	window.Resize(fyne.NewSize(480, 160))

	label := widget.NewLabel("Looking up pronunciations, the review dialog opens when candidates arrive...")
	label.Wrapping = fyne.TextWrapWord
	window.SetContent(fynetooltip.AddWindowToolTipLayer(container.NewPadded(label), window.Canvas()))

	reviewer := NewDialogReviewer(window, media)
	defer reviewer.Close()
	proc.SetReviewer(reviewer)
	proc.SetPairingEditor(reviewer)

	var (
		result  processor.Result
		flowErr error
	)
	go func() {
		result, flowErr = flow(context.Background())
		fyne.Do(window.Close)
	}()

	window.ShowAndRun()
	return result, flowErr
}
