// Package batch reads note-id list files for scripted downloads over many
// notes at once.
package batch

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadNoteList reads note ids from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func ReadNoteList(filename string) ([]int64, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read note list: %w", err)
	}

	var ids []int64
	for lineNo, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note id %q on line %d", line, lineNo+1)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
