// Package lookup talks to the remote pronunciation sources: a
// speech-synthesis endpoint, a dictionary-audio endpoint and a
// pronunciation-clip endpoint. Each source turns text into audio bytes
// plus identifying metadata, or fails; callers absorb individual failures.
package lookup

import (
	"context"
	"errors"
)

// Result is one retrieved pronunciation.
type Result struct {
	// Filename is the suggested media filename for the audio.
	Filename string

	// Data holds the raw audio bytes.
	Data []byte

	// Hash identifies the content for blacklisting. Empty when the source
	// does not support blacklisting.
	Hash string

	// Extras carries source-supplied metadata shown to the user when
	// judging trustworthiness (voice, speaker, model, ...).
	Extras map[string]string
}

// ErrBlacklisted is returned by the clip source when the retrieved content
// hash is already blacklisted. Callers skip such results silently.
var ErrBlacklisted = errors.New("pronunciation is blacklisted")

// SpeechSource synthesizes speech for arbitrary text in a language.
type SpeechSource interface {
	Fetch(ctx context.Context, text, lang string) (*Result, error)
	Name() string
	IsAvailable() error
}

// DictionarySource returns recorded dictionary pronunciations for a word.
// A word may have zero or many recordings.
type DictionarySource interface {
	Fetch(ctx context.Context, text string) ([]*Result, error)
	Name() string
	IsAvailable() error
}

// ClipSource returns a pronunciation clip for a base form and its reading.
type ClipSource interface {
	Fetch(ctx context.Context, base, reading string) (*Result, error)
	Name() string
	IsAvailable() error
}

// Blacklist is the part of the blacklist store sources consult before
// returning a candidate.
type Blacklist interface {
	Contains(hash string) (bool, error)
}

// Sources bundles the configured lookup collaborators. Nil members are
// skipped by the aggregator.
type Sources struct {
	Speech     SpeechSource
	Dictionary DictionarySource
	Clip       ClipSource
}
