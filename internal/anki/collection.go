package anki

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CardSide selects which half of a card template is visible.
type CardSide int

const (
	SideQuestion CardSide = iota
	SideAnswer
)

// Card is one scheduler entry generated from a note template.
type Card struct {
	ID     int64
	NoteID int64
	DeckID int64
	Ord    int
}

// Collection wraps an open collection.anki2 database plus its media folder.
type Collection struct {
	db       *sql.DB
	path     string
	models   map[int64]*Model
	decks    map[int64]string // deck id -> name
	media    *MediaStore
}

// OpenCollection opens an Anki collection database and parses its note-type
// and deck configuration. The media folder is assumed to be the
// collection.media directory next to the database file.
func OpenCollection(path string) (*Collection, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}

	c := &Collection{
		db:     db,
		path:   path,
		models: make(map[int64]*Model),
		decks:  make(map[int64]string),
		media:  NewMediaStore(filepath.Join(filepath.Dir(path), "collection.media")),
	}

	if err := c.loadMeta(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database.
func (c *Collection) Close() error {
	return c.db.Close()
}

// Media returns the collection's media store.
func (c *Collection) Media() *MediaStore {
	return c.media
}

// loadMeta reads the models and decks JSON blobs from the col table.
func (c *Collection) loadMeta() error {
	var modelsJSON, decksJSON string
	row := c.db.QueryRow(`SELECT models, decks FROM col LIMIT 1`)
	if err := row.Scan(&modelsJSON, &decksJSON); err != nil {
		return fmt.Errorf("failed to read collection metadata: %w", err)
	}

	var rawModels map[string]struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Flds []struct {
			Name string `json:"name"`
			Ord  int    `json:"ord"`
		} `json:"flds"`
		Tmpls []struct {
			Name string `json:"name"`
			Ord  int    `json:"ord"`
			Qfmt string `json:"qfmt"`
			Afmt string `json:"afmt"`
		} `json:"tmpls"`
	}
	if err := json.Unmarshal([]byte(modelsJSON), &rawModels); err != nil {
		return fmt.Errorf("failed to parse models: %w", err)
	}

	for key, rm := range rawModels {
		id := rm.ID
		if id == 0 {
			// Older exports key models by id but leave the field empty.
			id, _ = strconv.ParseInt(key, 10, 64)
		}
		m := &Model{ID: id, Name: rm.Name}

		flds := rm.Flds
		sort.Slice(flds, func(i, j int) bool { return flds[i].Ord < flds[j].Ord })
		for _, f := range flds {
			m.Fields = append(m.Fields, f.Name)
		}

		tmpls := rm.Tmpls
		sort.Slice(tmpls, func(i, j int) bool { return tmpls[i].Ord < tmpls[j].Ord })
		for _, t := range tmpls {
			m.Templates = append(m.Templates, Template{
				Name:     t.Name,
				Ord:      t.Ord,
				Question: t.Qfmt,
				Answer:   t.Afmt,
			})
		}
		c.models[id] = m
	}

	var rawDecks map[string]struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(decksJSON), &rawDecks); err != nil {
		return fmt.Errorf("failed to parse decks: %w", err)
	}
	for key, rd := range rawDecks {
		id := rd.ID
		if id == 0 {
			id, _ = strconv.ParseInt(key, 10, 64)
		}
		c.decks[id] = rd.Name
	}

	return nil
}

// Model returns a note type by id.
func (c *Collection) Model(id int64) (*Model, error) {
	m, ok := c.models[id]
	if !ok {
		return nil, fmt.Errorf("unknown note type id %d", id)
	}
	return m, nil
}

// DeckName returns the name of a deck, or "" when unknown.
func (c *Collection) DeckName(id int64) string {
	return c.decks[id]
}

// Note loads one note by id.
func (c *Collection) Note(id int64) (*Note, error) {
	var guid, flds string
	var mid int64
	row := c.db.QueryRow(`SELECT guid, mid, flds FROM notes WHERE id = ?`, id)
	if err := row.Scan(&guid, &mid, &flds); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("note %d not found", id)
		}
		return nil, fmt.Errorf("failed to load note %d: %w", id, err)
	}

	model, err := c.Model(mid)
	if err != nil {
		return nil, err
	}
	return NewNote(id, guid, model, splitFields(flds)), nil
}

// Card loads one card by id.
func (c *Collection) Card(id int64) (*Card, error) {
	card := &Card{ID: id}
	row := c.db.QueryRow(`SELECT nid, did, ord FROM cards WHERE id = ?`, id)
	if err := row.Scan(&card.NoteID, &card.DeckID, &card.Ord); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("card %d not found", id)
		}
		return nil, fmt.Errorf("failed to load card %d: %w", id, err)
	}
	return card, nil
}

// FirstCard returns the lowest-ordinal card of a note. Side downloads need
// a card to know which template half is visible.
func (c *Collection) FirstCard(noteID int64) (*Card, error) {
	card := &Card{NoteID: noteID}
	row := c.db.QueryRow(
		`SELECT id, did, ord FROM cards WHERE nid = ? ORDER BY ord LIMIT 1`, noteID)
	if err := row.Scan(&card.ID, &card.DeckID, &card.Ord); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("note %d has no cards", noteID)
		}
		return nil, fmt.Errorf("failed to load cards of note %d: %w", noteID, err)
	}
	return card, nil
}

// TemplateText returns the template half of a card.
func (c *Collection) TemplateText(card *Card, side CardSide) (string, error) {
	note, err := c.Note(card.NoteID)
	if err != nil {
		return "", err
	}
	if card.Ord >= len(note.Model.Templates) {
		return "", fmt.Errorf("card %d references template %d of note type %q which has %d templates",
			card.ID, card.Ord, note.Model.Name, len(note.Model.Templates))
	}
	tmpl := note.Model.Templates[card.Ord]
	if side == SideQuestion {
		return tmpl.Question, nil
	}
	return tmpl.Answer, nil
}

// SaveNote writes a note's field values back to the collection. No-op when
// the note is unmodified.
func (c *Collection) SaveNote(note *Note) error {
	if !note.Dirty() {
		return nil
	}
	sortField := ""
	if vals := note.Values(); len(vals) > 0 {
		sortField = vals[0]
	}
	_, err := c.db.Exec(
		`UPDATE notes SET flds = ?, sfld = ?, mod = ?, usn = -1 WHERE id = ?`,
		note.joinFields(), sortField, time.Now().Unix(), note.ID)
	if err != nil {
		return fmt.Errorf("failed to save note %d: %w", note.ID, err)
	}
	return nil
}

// SoundTag wraps a media filename in the sound-reference token Anki
// renders as an audio player.
func SoundTag(filename string) string {
	return fmt.Sprintf("[sound:%s]", filename)
}

// AppendSound appends a sound reference to a field value, separating it
// from existing content with a single space.
func AppendSound(fieldValue, filename string) string {
	tag := SoundTag(filename)
	if strings.TrimSpace(fieldValue) == "" {
		return tag
	}
	return fieldValue + " " + tag
}

var soundTagRe = regexp.MustCompile(`\[sound:([^\]]+)\]`)

// SoundFilenames returns the media filenames referenced by the sound
// tags in a field value, in order.
func SoundFilenames(fieldValue string) []string {
	var names []string
	for _, m := range soundTagRe.FindAllStringSubmatch(fieldValue, -1) {
		names = append(names, m[1])
	}
	return names
}
