package anki

import (
	"fmt"
	"strings"
)

// fieldSeparator joins note field values in the notes.flds column.
const fieldSeparator = "\x1f"

// Template is one renderable card side pair of a note type.
type Template struct {
	Name     string
	Ord      int
	Question string // qfmt
	Answer   string // afmt
}

// Model is an Anki note type: ordered field names plus card templates.
type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
}

// Note holds the field values of one collection note. Field names are
// case-preserving; lookups compare case-insensitively. Field order is the
// note type's field order.
type Note struct {
	ID    int64
	GUID  string
	Model *Model

	values []string
	dirty  bool
}

// NewNote builds a note from a model and its field values. Missing values
// are padded with empty strings so every model field is addressable.
func NewNote(id int64, guid string, model *Model, values []string) *Note {
	padded := make([]string, len(model.Fields))
	copy(padded, values)
	return &Note{ID: id, GUID: guid, Model: model, values: padded}
}

// FieldNames returns the note's field names in note-type order.
func (n *Note) FieldNames() []string {
	return n.Model.Fields
}

// Has reports whether the note has a field with the given name,
// compared case-insensitively.
func (n *Note) Has(name string) bool {
	_, ok := n.index(name)
	return ok
}

// Get returns the text of the named field, or "" when the field does not
// exist.
func (n *Note) Get(name string) string {
	idx, ok := n.index(name)
	if !ok {
		return ""
	}
	return n.values[idx]
}

// Set overwrites the text of the named field.
func (n *Note) Set(name, value string) error {
	idx, ok := n.index(name)
	if !ok {
		return fmt.Errorf("note %d has no field %q", n.ID, name)
	}
	if n.values[idx] != value {
		n.values[idx] = value
		n.dirty = true
	}
	return nil
}

// Values returns a copy of the field values in note-type order.
func (n *Note) Values() []string {
	out := make([]string, len(n.values))
	copy(out, n.values)
	return out
}

// Dirty reports whether any field was modified since loading.
func (n *Note) Dirty() bool {
	return n.dirty
}

func (n *Note) index(name string) (int, bool) {
	for i, fn := range n.Model.Fields {
		if strings.EqualFold(fn, name) {
			return i, true
		}
	}
	return 0, false
}

// joinFields encodes the values for the notes.flds column.
func (n *Note) joinFields() string {
	return strings.Join(n.values, fieldSeparator)
}

// splitFields decodes a notes.flds column value.
func splitFields(flds string) []string {
	return strings.Split(flds, fieldSeparator)
}
