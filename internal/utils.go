package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Version is the ankiaudio release version.
const Version = "0.1.0"

// MediaFilename builds a collection-media filename for a downloaded
// pronunciation. Format: prefix_md5(text)[:8].ext
func MediaFilename(prefix, text, ext string) string {
	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prefix), hashStr, ext)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
