package anki

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore writes downloaded audio into a collection.media folder.
// Saving the same content twice under the same name is a no-op, so commit
// retries cannot corrupt the folder.
type MediaStore struct {
	dir string
}

// NewMediaStore creates a media store rooted at dir.
func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: dir}
}

// Dir returns the media folder path.
func (m *MediaStore) Dir() string {
	return m.dir
}

// Save stores data under suggestedName and returns the filename actually
// used. When a different file already occupies the name, a unique suffix
// is inserted before the extension.
func (m *MediaStore) Save(data []byte, suggestedName string) (string, error) {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media folder: %w", err)
	}

	name := filepath.Base(suggestedName)
	target := filepath.Join(m.dir, name)

	existing, err := os.ReadFile(target)
	if err == nil {
		if bytes.Equal(existing, data) {
			// Same content already stored, idempotent.
			return name, nil
		}
		// Name collision with different content.
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
		target = filepath.Join(m.dir, name)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return name, nil
}

// Checksum returns the md5 hex digest of data, the identifier blacklists
// are keyed on.
func Checksum(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}
