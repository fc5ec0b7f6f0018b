// Package anki reads and writes Anki collection files (collection.anki2).
// It loads notes together with their note-type field definitions and card
// templates, saves modified field values back, and manages the
// collection.media folder that sound references point into.
package anki
