package field

import (
	"regexp"

	"codeberg.org/snonux/ankiaudio/internal/anki"
)

// ScanTemplate returns the destination field names the given template half
// is programmed to receive audio into: every referenced field whose name
// contains a marker key, deduplicated in first-seen order and filtered to
// fields that actually exist on the note. Templates may reference fields
// of other note types, those are dropped.
func ScanTemplate(templateText string, note *anki.Note, cfg *Config) []string {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var names []string
	for _, marker := range cfg.MarkerKeys {
		re := regexp.MustCompile(regexpForMarker(marker))
		for _, m := range re.FindAllStringSubmatch(templateText, -1) {
			names = append(names, m[1])
		}
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if note.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// regexpForMarker matches a field reference token {{Name}} whose name
// contains the marker, optionally prefixed by a conditional sigil
// (#, ^, /) or a filter name followed by a colon, e.g. {{#Audio}} or
// {{furigana:Reading Audio}}.
func regexpForMarker(marker string) string {
	return `(?i)\{\{(?:[/^#]|[^:}]+:|)([^:}{]*` + regexp.QuoteMeta(marker) + `[^:}{]*)\}\}`
}
