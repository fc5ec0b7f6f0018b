package anki

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
)

// createTestCollection writes a minimal collection.anki2 with one note
// type, two decks, one note and two cards and returns its path.
func createTestCollection(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create test db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE col (models text, decks text)`,
		`CREATE TABLE notes (id integer PRIMARY KEY, guid text, mid integer,
			mod integer, usn integer, tags text, flds text, sfld text,
			csum integer, flags integer, data text)`,
		`CREATE TABLE cards (id integer PRIMARY KEY, nid integer, did integer, ord integer)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
	}

	models := map[string]any{
		"100": map[string]any{
			"id":   100,
			"name": "Japanese Vocab",
			"flds": []map[string]any{
				// Out of order on purpose, loading must sort by ord.
				{"name": "Reading", "ord": 1},
				{"name": "Expression", "ord": 0},
				{"name": "Audio", "ord": 2},
			},
			"tmpls": []map[string]any{
				{"name": "Recognition", "ord": 0,
					"qfmt": "{{Expression}}", "afmt": "{{Reading}}{{Audio}}"},
				{"name": "Recall", "ord": 1,
					"qfmt": "{{Reading}}", "afmt": "{{Expression}}"},
			},
		},
	}
	decks := map[string]any{
		"1": map[string]any{"id": 1, "name": "Default"},
		"2": map[string]any{"id": 2, "name": "Japanese::Vocab"},
	}
	modelsJSON, _ := json.Marshal(models)
	decksJSON, _ := json.Marshal(decks)

	if _, err := db.Exec(`INSERT INTO col VALUES (?, ?)`, string(modelsJSON), string(decksJSON)); err != nil {
		t.Fatalf("Failed to insert metadata: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO notes VALUES (10, 'g10', 100, 0, 0, '', ?, '猫', 0, 0, '')`,
		"猫\x1f猫[ねこ]\x1f"); err != nil {
		t.Fatalf("Failed to insert note: %v", err)
	}
	for _, c := range []struct{ id, nid, did, ord int64 }{
		{20, 10, 2, 0},
		{21, 10, 2, 1},
	} {
		if _, err := db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?)`, c.id, c.nid, c.did, c.ord); err != nil {
			t.Fatalf("Failed to insert card: %v", err)
		}
	}
	return path
}

func TestOpenCollection(t *testing.T) {
	col, err := OpenCollection(createTestCollection(t))
	if err != nil {
		t.Fatalf("OpenCollection failed: %v", err)
	}
	defer col.Close()

	model, err := col.Model(100)
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if model.Name != "Japanese Vocab" {
		t.Errorf("Expected model 'Japanese Vocab', got '%s'", model.Name)
	}

	// Fields must come back in ord order despite JSON order.
	want := []string{"Expression", "Reading", "Audio"}
	for i, name := range want {
		if model.Fields[i] != name {
			t.Errorf("Expected field %d to be '%s', got '%s'", i, name, model.Fields[i])
		}
	}

	if len(model.Templates) != 2 || model.Templates[0].Name != "Recognition" {
		t.Errorf("Unexpected templates: %+v", model.Templates)
	}

	if got := col.DeckName(2); got != "Japanese::Vocab" {
		t.Errorf("Expected deck 'Japanese::Vocab', got '%s'", got)
	}
	if got := col.DeckName(99); got != "" {
		t.Errorf("Expected empty name for unknown deck, got '%s'", got)
	}
}

func TestCollectionMediaFolder(t *testing.T) {
	path := createTestCollection(t)
	col, err := OpenCollection(path)
	if err != nil {
		t.Fatalf("OpenCollection failed: %v", err)
	}
	defer col.Close()

	want := filepath.Join(filepath.Dir(path), "collection.media")
	if got := col.Media().Dir(); got != want {
		t.Errorf("Expected media dir %s, got %s", want, got)
	}
}

func TestCollectionNote(t *testing.T) {
	col, err := OpenCollection(createTestCollection(t))
	if err != nil {
		t.Fatalf("OpenCollection failed: %v", err)
	}
	defer col.Close()

	note, err := col.Note(10)
	if err != nil {
		t.Fatalf("Note failed: %v", err)
	}
	if note.Get("Expression") != "猫" {
		t.Errorf("Expected expression '猫', got '%s'", note.Get("Expression"))
	}
	if note.Get("Reading") != "猫[ねこ]" {
		t.Errorf("Expected reading '猫[ねこ]', got '%s'", note.Get("Reading"))
	}

	if _, err := col.Note(999); err == nil {
		t.Error("Expected error for unknown note")
	}
}

func TestCollectionCards(t *testing.T) {
	col, err := OpenCollection(createTestCollection(t))
	if err != nil {
		t.Fatalf("OpenCollection failed: %v", err)
	}
	defer col.Close()

	card, err := col.Card(21)
	if err != nil {
		t.Fatalf("Card failed: %v", err)
	}
	if card.NoteID != 10 || card.Ord != 1 {
		t.Errorf("Unexpected card: %+v", card)
	}

	first, err := col.FirstCard(10)
	if err != nil {
		t.Fatalf("FirstCard failed: %v", err)
	}
	if first.ID != 20 || first.Ord != 0 {
		t.Errorf("Expected card 20 ord 0, got %+v", first)
	}

	if _, err := col.Card(999); err == nil {
		t.Error("Expected error for unknown card")
	}
	if _, err := col.FirstCard(999); err == nil {
		t.Error("Expected error for cardless note")
	}
}

func TestTemplateText(t *testing.T) {
	col, err := OpenCollection(createTestCollection(t))
	if err != nil {
		t.Fatalf("OpenCollection failed: %v", err)
	}
	defer col.Close()

	card, err := col.Card(20)
	if err != nil {
		t.Fatalf("Card failed: %v", err)
	}

	q, err := col.TemplateText(card, SideQuestion)
	if err != nil {
		t.Fatalf("TemplateText failed: %v", err)
	}
	if q != "{{Expression}}" {
		t.Errorf("Unexpected question template: %s", q)
	}

	a, err := col.TemplateText(card, SideAnswer)
	if err != nil {
		t.Fatalf("TemplateText failed: %v", err)
	}
	if a != "{{Reading}}{{Audio}}" {
		t.Errorf("Unexpected answer template: %s", a)
	}
}

func TestSaveNote(t *testing.T) {
	path := createTestCollection(t)
	col, err := OpenCollection(path)
	if err != nil {
		t.Fatalf("OpenCollection failed: %v", err)
	}
	defer col.Close()

	note, err := col.Note(10)
	if err != nil {
		t.Fatalf("Note failed: %v", err)
	}

	// Saving a clean note must not touch the row.
	if err := col.SaveNote(note); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	if err := note.Set("Audio", "[sound:neko.mp3]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := col.SaveNote(note); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	reloaded, err := col.Note(10)
	if err != nil {
		t.Fatalf("Note reload failed: %v", err)
	}
	if reloaded.Get("Audio") != "[sound:neko.mp3]" {
		t.Errorf("Expected saved audio field, got '%s'", reloaded.Get("Audio"))
	}
	if reloaded.Get("Expression") != "猫" {
		t.Errorf("Expected untouched expression, got '%s'", reloaded.Get("Expression"))
	}
}
