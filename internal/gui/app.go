package gui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/ankiaudio/internal"
	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/processor"
)

// Application is the main interactive window: pick a note or card, run one
// of the download flows, review candidates in the dialog.
type Application struct {
	app    fyne.App
	window fyne.Window

	noteInput   *widget.Entry
	cardInput   *widget.Entry
	noteInfo    *widget.Label
	statusLabel *widget.Label

	buttons map[actionID]*ttwidget.Button

	config   *Config
	col      *anki.Collection
	proc     *processor.Processor
	reviewer *DialogReviewer

	busy   bool
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds the collaborators the window drives.
type Config struct {
	Collection *anki.Collection
	Processor  *processor.Processor
}

// New creates the main application window and wires the review dialogs
// into the processor.
func New(config *Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.ankiaudio")

	a := &Application{
		app:     myApp,
		config:  config,
		col:     config.Collection,
		proc:    config.Processor,
		ctx:     ctx,
		cancel:  cancel,
		buttons: make(map[actionID]*ttwidget.Button),
	}

	a.setupUI()

	a.reviewer = NewDialogReviewer(a.window, a.col.Media())
	a.proc.SetReviewer(a.reviewer)
	a.proc.SetPairingEditor(a.reviewer)
	a.proc.ReviewSide = true

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("AnkiAudio v%s - Pronunciation Downloader", internal.Version))
	a.window.Resize(fyne.NewSize(700, 480))

	a.noteInput = widget.NewEntry()
	a.noteInput.SetPlaceHolder("Note ID...")
	a.noteInput.OnChanged = func(string) { a.refreshActions() }
	a.noteInput.OnSubmitted = func(string) {
		a.loadNoteInfo()
		a.window.Canvas().Unfocus()
	}

	a.cardInput = widget.NewEntry()
	a.cardInput.SetPlaceHolder("Card ID (for side flows)...")
	a.cardInput.OnChanged = func(string) { a.refreshActions() }
	a.cardInput.OnSubmitted = func(string) {
		a.window.Canvas().Unfocus()
	}

	inputGrid := container.NewGridWithColumns(2, a.noteInput, a.cardInput)

	// Toolbar is generated from the action table.
	toolbar := container.NewHBox()
	for _, act := range appActions {
		act := act
		btn := ttwidget.NewButtonWithIcon("", act.icon, func() {
			if act.enabled(a) {
				act.run(a)
			}
		})
		a.buttons[act.id] = btn
		toolbar.Add(btn)
	}

	a.noteInfo = widget.NewLabel("Enter a note id and press Enter to inspect it.")
	a.noteInfo.Wrapping = fyne.TextWrapWord
	infoScroll := container.NewScroll(a.noteInfo)
	infoScroll.SetMinSize(fyne.NewSize(0, 260))

	a.statusLabel = widget.NewLabel("Ready")

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			widget.NewSeparator(),
			inputGrid,
		),
		a.statusLabel,
		nil, nil,
		infoScroll,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
		if a.reviewer != nil {
			a.reviewer.Close()
		}
	})

	a.setupKeyboardShortcuts()
	a.refreshActions()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// setupTooltips sets all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	for _, act := range appActions {
		a.buttons[act.id].SetToolTip(act.tooltip)
	}
}

// setupKeyboardShortcuts installs the single-rune hotkeys from the action
// table plus Escape to unfocus.
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		focused := a.window.Canvas().Focused()
		if focused == a.noteInput || focused == a.cardInput {
			// Let the rune be typed normally.
			return
		}
		if r == 'q' {
			a.window.Close()
			return
		}
		for _, act := range appActions {
			if r == act.key && act.enabled(a) {
				act.run(a)
				return
			}
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

// refreshActions re-evaluates every action's enabled state.
func (a *Application) refreshActions() {
	for _, act := range appActions {
		if act.enabled(a) {
			a.buttons[act.id].Enable()
		} else {
			a.buttons[act.id].Disable()
		}
	}
}

func (a *Application) isBusy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

func (a *Application) setBusy(busy bool) {
	a.mu.Lock()
	a.busy = busy
	a.mu.Unlock()
	a.refreshActions()
}

// loadNoteInfo shows the note's deck, note type and fields so the user can
// confirm they picked the right one.
func (a *Application) loadNoteInfo() {
	id, err := a.parseID(a.noteInput.Text)
	if err != nil {
		a.showError(err)
		return
	}
	note, err := a.col.Note(id)
	if err != nil {
		a.showError(err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Note %d — note type %q\n", note.ID, note.Model.Name)
	if card, err := a.col.FirstCard(note.ID); err == nil {
		fmt.Fprintf(&b, "Deck: %s (first card %d)\n", a.col.DeckName(card.DeckID), card.ID)
	}
	b.WriteString("\nFields:\n")
	for _, fn := range note.FieldNames() {
		value := note.Get(fn)
		if len(value) > 80 {
			value = value[:80] + "…"
		}
		fmt.Fprintf(&b, "  %s: %s\n", fn, value)
	}
	a.noteInfo.SetText(b.String())
	a.updateStatus("Ready")
}

// runNoteFlow runs the note flow in the background worker.
func (a *Application) runNoteFlow(manual bool) {
	id, err := a.parseID(a.noteInput.Text)
	if err != nil {
		a.showError(err)
		return
	}
	a.runFlow(fmt.Sprintf("note %d", id), func(ctx context.Context) (processor.Result, error) {
		return a.proc.DownloadForNote(ctx, id, manual)
	})
}

// runSideFlow runs the side flow for the entered card id.
func (a *Application) runSideFlow(answer bool) {
	id, err := a.parseID(a.cardInput.Text)
	if err != nil {
		a.showError(err)
		return
	}
	side := anki.SideQuestion
	if answer {
		side = anki.SideAnswer
	}
	a.runFlow(fmt.Sprintf("card %d", id), func(ctx context.Context) (processor.Result, error) {
		return a.proc.DownloadForSide(ctx, id, side)
	})
}

// runFlow executes one download flow on a worker goroutine. The review
// dialogs block that goroutine, never the Fyne thread.
func (a *Application) runFlow(what string, flow func(context.Context) (processor.Result, error)) {
	if a.isBusy() {
		return
	}
	a.setBusy(true)
	a.updateStatus("Downloading audio for " + what + "...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		result, err := flow(a.ctx)

		fyne.Do(func() {
			a.setBusy(false)
			if err != nil {
				a.showError(err)
				return
			}
			a.updateStatus(resultMessage(what, result))
		})
	}()
}

// resultMessage renders a flow result for the status bar.
func resultMessage(what string, result processor.Result) string {
	switch result.Status {
	case processor.StatusEmpty:
		return "Nothing downloaded for " + what
	case processor.StatusCancelled:
		return "Cancelled"
	default:
		o := result.Outcome
		return fmt.Sprintf("Done for %s: %d added, %d kept, %d deleted, %d blacklisted",
			what, o.Added, o.Kept, o.Deleted, o.Blacklisted)
	}
}

func (a *Application) parseID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", text)
	}
	return id, nil
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
}

func (a *Application) onShowHotkeys() {
	hotkeys := `[Project Page: https://codeberg.org/snonux/ankiaudio](https://codeberg.org/snonux/ankiaudio)

---

## Flows
**a** Download audio for note
**m** Download with manual review
**f** Download for question side of card
**b** Download for answer side of card

## Other
**Enter** (in note field) Inspect note
**Esc** Unfocus field
**h** Show hotkeys
**q** Quit application`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(480, 360))

	dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window).Show()
}
