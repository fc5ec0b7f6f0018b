// Package testutil provides shared test helpers: a builder for throwaway
// Anki collections and mock lookup sources.
package testutil

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// TemplateSpec is one card template of a test note type.
type TemplateSpec struct {
	Name     string
	Question string
	Answer   string
}

// ModelSpec is a test note type.
type ModelSpec struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []TemplateSpec
}

// NoteSpec is a test note. Values are in field order; missing values pad
// to empty.
type NoteSpec struct {
	ID      int64
	ModelID int64
	Values  []string
}

// CardSpec is a test card.
type CardSpec struct {
	ID     int64
	NoteID int64
	DeckID int64
	Ord    int
}

// CollectionBuilder assembles a throwaway collection.anki2 for tests.
type CollectionBuilder struct {
	models []ModelSpec
	decks  map[int64]string
	notes  []NoteSpec
	cards  []CardSpec
}

// NewCollectionBuilder creates an empty builder with a single "Default"
// deck.
func NewCollectionBuilder() *CollectionBuilder {
	return &CollectionBuilder{
		decks: map[int64]string{1: "Default"},
	}
}

// WithModel adds a note type.
func (b *CollectionBuilder) WithModel(m ModelSpec) *CollectionBuilder {
	b.models = append(b.models, m)
	return b
}

// WithDeck adds a deck.
func (b *CollectionBuilder) WithDeck(id int64, name string) *CollectionBuilder {
	b.decks[id] = name
	return b
}

// WithNote adds a note.
func (b *CollectionBuilder) WithNote(n NoteSpec) *CollectionBuilder {
	b.notes = append(b.notes, n)
	return b
}

// WithCard adds a card.
func (b *CollectionBuilder) WithCard(c CardSpec) *CollectionBuilder {
	b.cards = append(b.cards, c)
	return b
}

const fieldSeparator = "\x1f"

// Build writes the collection database into a fresh temp dir and returns
// its path. The media folder is created next to it.
func (b *CollectionBuilder) Build(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create test collection: %v", err)
	}
	defer db.Close()

	schema := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create test schema: %v", err)
		}
	}

	if _, err := db.Exec(
		`INSERT INTO col VALUES (1, 0, 0, 0, 11, 0, 0, 0, '{}', ?, ?, '{}', '{}')`,
		b.modelsJSON(t), b.decksJSON(t)); err != nil {
		t.Fatalf("Failed to insert collection metadata: %v", err)
	}

	for _, n := range b.notes {
		values := make([]string, len(n.Values))
		copy(values, n.Values)
		for _, m := range b.models {
			if m.ID == n.ModelID {
				for len(values) < len(m.Fields) {
					values = append(values, "")
				}
			}
		}
		flds := ""
		for i, v := range values {
			if i > 0 {
				flds += fieldSeparator
			}
			flds += v
		}
		sfld := ""
		if len(values) > 0 {
			sfld = values[0]
		}
		if _, err := db.Exec(
			`INSERT INTO notes VALUES (?, ?, ?, 0, 0, '', ?, ?, 0, 0, '')`,
			n.ID, fmt.Sprintf("guid%d", n.ID), n.ModelID, flds, sfld); err != nil {
			t.Fatalf("Failed to insert test note %d: %v", n.ID, err)
		}
	}

	for _, c := range b.cards {
		if _, err := db.Exec(
			`INSERT INTO cards VALUES (?, ?, ?, ?, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			c.ID, c.NoteID, c.DeckID, c.Ord); err != nil {
			t.Fatalf("Failed to insert test card %d: %v", c.ID, err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "collection.media"), 0755); err != nil {
		t.Fatalf("Failed to create media folder: %v", err)
	}
	return path
}

func (b *CollectionBuilder) modelsJSON(t *testing.T) string {
	t.Helper()

	type jsonField struct {
		Name string `json:"name"`
		Ord  int    `json:"ord"`
	}
	type jsonTemplate struct {
		Name string `json:"name"`
		Ord  int    `json:"ord"`
		Qfmt string `json:"qfmt"`
		Afmt string `json:"afmt"`
	}
	type jsonModel struct {
		ID    int64          `json:"id"`
		Name  string         `json:"name"`
		Flds  []jsonField    `json:"flds"`
		Tmpls []jsonTemplate `json:"tmpls"`
	}

	models := make(map[string]jsonModel)
	for _, m := range b.models {
		jm := jsonModel{ID: m.ID, Name: m.Name}
		for i, f := range m.Fields {
			jm.Flds = append(jm.Flds, jsonField{Name: f, Ord: i})
		}
		for i, tmpl := range m.Templates {
			jm.Tmpls = append(jm.Tmpls, jsonTemplate{
				Name: tmpl.Name, Ord: i, Qfmt: tmpl.Question, Afmt: tmpl.Answer,
			})
		}
		models[fmt.Sprintf("%d", m.ID)] = jm
	}

	data, err := json.Marshal(models)
	if err != nil {
		t.Fatalf("Failed to marshal test models: %v", err)
	}
	return string(data)
}

func (b *CollectionBuilder) decksJSON(t *testing.T) string {
	t.Helper()

	type jsonDeck struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decks := make(map[string]jsonDeck)
	for id, name := range b.decks {
		decks[fmt.Sprintf("%d", id)] = jsonDeck{ID: id, Name: name}
	}

	data, err := json.Marshal(decks)
	if err != nil {
		t.Fatalf("Failed to marshal test decks: %v", err)
	}
	return string(data)
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AudioData returns mock audio data with a plausible MP3 header.
func AudioData(tag byte) []byte {
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, tag}
}
