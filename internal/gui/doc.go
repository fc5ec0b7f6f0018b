// Package gui implements the Fyne desktop interface: the note picker
// window, the candidate review dialog and the pairing editor. The
// processor stays UI-free; this package plugs into it through the
// review.Reviewer and review.PairingEditor interfaces.
package gui
