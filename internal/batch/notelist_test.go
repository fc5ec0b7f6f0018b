package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNoteList(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write note list: %v", err)
	}
	return path
}

func TestReadNoteList(t *testing.T) {
	path := writeNoteList(t, `# vocab batch
1699912345001

1699912345002
  1699912345003
`)

	ids, err := ReadNoteList(path)
	if err != nil {
		t.Fatalf("ReadNoteList failed: %v", err)
	}
	want := []int64{1699912345001, 1699912345002, 1699912345003}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d ids, got %d", len(want), len(ids))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("Expected id %d at position %d, got %d", id, i, ids[i])
		}
	}
}

func TestReadNoteListWindowsLineEndings(t *testing.T) {
	path := writeNoteList(t, "1\r\n2\r\n")

	ids, err := ReadNoteList(path)
	if err != nil {
		t.Fatalf("ReadNoteList failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Unexpected ids: %v", ids)
	}
}

func TestReadNoteListInvalidID(t *testing.T) {
	path := writeNoteList(t, "123\nnot-a-number\n")

	_, err := ReadNoteList(path)
	if err == nil {
		t.Fatal("Expected error for invalid id")
	}
	if got := err.Error(); got != `invalid note id "not-a-number" on line 2` {
		t.Errorf("Unexpected error message: %s", got)
	}
}

func TestReadNoteListMissingFile(t *testing.T) {
	if _, err := ReadNoteList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}
