package segment

import (
	"regexp"
	"strings"
)

// Segmenter splits text into its base form and its phonetic reading.
// Implementations return identical base and reading when the text has no
// separate reading form.
type Segmenter interface {
	Split(text string) (base, reading string, err error)
}

// rubyRe matches one base[reading] ruby token as stored by Anki's
// Japanese support, e.g. "猫[ねこ]が 好[す]き".
var rubyRe = regexp.MustCompile(` ?([^ \[]+)\[([^\]]*)\]`)

// RubySegmenter decomposes text that already carries ruby notation.
type RubySegmenter struct{}

// HasRuby reports whether text contains ruby reading notation.
func HasRuby(text string) bool {
	return rubyRe.MatchString(text)
}

// Split separates ruby-annotated text into base text and reading. Text
// without any ruby tokens is returned unchanged as both components.
func (RubySegmenter) Split(text string) (string, string, error) {
	if !HasRuby(text) {
		return text, text, nil
	}
	base := rubyRe.ReplaceAllString(text, "$1")
	reading := rubyRe.ReplaceAllString(text, "$2")
	return strings.TrimSpace(base), strings.TrimSpace(reading), nil
}

// identitySegmenter returns the input as both components. Used when no
// reading source is available at all.
type identitySegmenter struct{}

func (identitySegmenter) Split(text string) (string, string, error) {
	return text, text, nil
}

// NewIdentity returns a segmenter that never decomposes.
func NewIdentity() Segmenter {
	return identitySegmenter{}
}

// auto prefers ruby notation and falls back to a delegate for plain text.
type auto struct {
	fallback Segmenter
}

// NewAuto returns a segmenter that uses ruby notation when present and
// the given fallback otherwise. A nil fallback means plain text stays
// undecomposed.
func NewAuto(fallback Segmenter) Segmenter {
	if fallback == nil {
		fallback = identitySegmenter{}
	}
	return auto{fallback: fallback}
}

func (a auto) Split(text string) (string, string, error) {
	if HasRuby(text) {
		return RubySegmenter{}.Split(text)
	}
	return a.fallback.Split(text)
}
