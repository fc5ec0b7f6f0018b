package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// actionID names one toolbar action.
type actionID string

const (
	actionAuto     actionID = "auto"
	actionManual   actionID = "manual"
	actionQuestion actionID = "question"
	actionAnswer   actionID = "answer"
	actionHelp     actionID = "help"
)

// action describes one toolbar button: icon, tooltip, hotkey rune and the
// handler. enabled gates the button and its hotkey on current state, so
// which buttons light up is data, not scattered conditionals.
type action struct {
	id      actionID
	icon    fyne.Resource
	tooltip string
	key     rune
	enabled func(a *Application) bool
	run     func(a *Application)
}

// needsNote enables an action while a note id is entered and no flow runs.
func needsNote(a *Application) bool {
	return !a.isBusy() && a.noteInput.Text != ""
}

// needsCard enables an action while a card id is entered and no flow runs.
func needsCard(a *Application) bool {
	return !a.isBusy() && a.cardInput.Text != ""
}

// appActions is the toolbar in display order.
var appActions = []*action{
	{
		id:      actionAuto,
		icon:    theme.DownloadIcon(),
		tooltip: "Download audio for note (a)",
		key:     'a',
		enabled: needsNote,
		run:     func(a *Application) { a.runNoteFlow(false) },
	},
	{
		id:      actionManual,
		icon:    theme.DocumentCreateIcon(),
		tooltip: "Download with manual review (m)",
		key:     'm',
		enabled: needsNote,
		run:     func(a *Application) { a.runNoteFlow(true) },
	},
	{
		id:      actionQuestion,
		icon:    theme.VisibilityOffIcon(),
		tooltip: "Download for question side of card (f)",
		key:     'f',
		enabled: needsCard,
		run:     func(a *Application) { a.runSideFlow(false) },
	},
	{
		id:      actionAnswer,
		icon:    theme.VisibilityIcon(),
		tooltip: "Download for answer side of card (b)",
		key:     'b',
		enabled: needsCard,
		run:     func(a *Application) { a.runSideFlow(true) },
	},
	{
		id:      actionHelp,
		icon:    theme.HelpIcon(),
		tooltip: "Show hotkeys (h)",
		key:     'h',
		enabled: func(*Application) bool { return true },
		run:     (*Application).onShowHotkeys,
	},
}
