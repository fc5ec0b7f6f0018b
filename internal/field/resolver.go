package field

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/segment"
)

// ErrNoSourceField means no unambiguous source field exists for a
// destination field. Callers skip the destination; this is never fatal.
var ErrNoSourceField = errors.New("no source field found")

// Pairing associates a resolved source field with its audio destination
// field, carrying the cleaned source text. For reading-based lookups the
// text is decomposed into base form and reading.
type Pairing struct {
	SourceField string
	DestField   string
	Text        string

	// Reading-mode components, set only when Readings was requested.
	Base     string
	Reading  string
	Readings bool
}

// DisplayText formats the pairing's text for candidate lists.
func (p *Pairing) DisplayText() string {
	if p.Readings && p.Base != p.Reading {
		return fmt.Sprintf("%s (%s)", p.Base, p.Reading)
	}
	if p.Readings {
		return p.Base
	}
	return p.Text
}

// Resolver finds the source field for an audio destination field.
type Resolver struct {
	cfg *Config
	seg segment.Segmenter
}

// NewResolver creates a resolver with the given naming configuration and
// reading segmenter. A nil config uses DefaultConfig; a nil segmenter
// leaves reading text undecomposed.
func NewResolver(cfg *Config, seg segment.Segmenter) *Resolver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if seg == nil {
		seg = segment.NewIdentity()
	}
	return &Resolver{cfg: cfg, seg: seg}
}

// Resolve determines the source field for destField on the note.
//
// When destField is exactly a marker key, the configured candidate list is
// scanned against the note's fields. When a marker key is merely a
// substring, candidate names are derived from destField itself: for
// generic lookups the marker plus at most one bounding separator is
// removed, for reading lookups the marker is substituted by each reading
// candidate. A marker that matches but yields no source field fails with
// ErrNoSourceField; later marker keys are not tried.
func (r *Resolver) Resolve(note *anki.Note, destField string, readings bool) (*Pairing, error) {
	target := strings.ToLower(destField)

	fieldNames := note.FieldNames()
	lowerNames := make([]string, len(fieldNames))
	for i, fn := range fieldNames {
		lowerNames[i] = strings.ToLower(fn)
	}

	for _, marker := range r.cfg.MarkerKeys {
		var candidates []string
		switch {
		case target == marker:
			if readings {
				candidates = r.cfg.ReadingFields
			} else {
				candidates = r.cfg.ExpressionFields
			}
		case strings.Contains(target, marker):
			if readings {
				for _, rk := range r.cfg.ReadingFields {
					candidates = append(candidates, strings.ReplaceAll(target, marker, rk))
				}
			} else {
				candidates = []string{trimMarker(target, marker)}
			}
		default:
			continue
		}

		for _, cnd := range candidates {
			for idx, lname := range lowerNames {
				if cnd == lname {
					return r.pairing(note, fieldNames[idx], destField, readings)
				}
			}
		}
		// The marker matched the destination name but no candidate field
		// exists on this note. Trying further marker keys would pick a
		// default the user never asked for.
		return nil, fmt.Errorf("%w for %q", ErrNoSourceField, destField)
	}

	return nil, fmt.Errorf("%w: %q is not an audio field", ErrNoSourceField, destField)
}

// trimMarker removes one occurrence of marker from name together with at
// most one bounding separator: "example_audio" and "audio_example" both
// become "example", while "another_audio_example" keeps exactly one
// separator and becomes "another_example".
func trimMarker(name, marker string) string {
	re := regexp.MustCompile(`[\s_]` + regexp.QuoteMeta(marker) + `|` + regexp.QuoteMeta(marker) + `[\s_]?`)
	if loc := re.FindStringIndex(name); loc != nil {
		return name[:loc[0]] + name[loc[1]:]
	}
	return name
}

func (r *Resolver) pairing(note *anki.Note, sourceField, destField string, readings bool) (*Pairing, error) {
	text := CleanFieldText(note.Get(sourceField))
	p := &Pairing{
		SourceField: sourceField,
		DestField:   destField,
		Text:        text,
		Readings:    readings,
	}
	if readings {
		base, reading, err := r.seg.Split(text)
		if err != nil {
			// Decomposition is best effort; the clip source copes with
			// identical components.
			base, reading = text, text
		}
		p.Base = base
		p.Reading = reading
	}
	return p, nil
}
