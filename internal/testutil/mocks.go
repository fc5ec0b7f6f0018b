package testutil

import (
	"context"
	"fmt"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/lookup"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
	"codeberg.org/snonux/ankiaudio/internal/review"
)

// MockSpeechSource mocks the speech-synthesis source.
type MockSpeechSource struct {
	Responses map[string]*lookup.Result
	Errors    map[string]error
	Calls     []string
}

// Fetch returns the canned result for text, a canned error, or a default
// synthesized result.
func (m *MockSpeechSource) Fetch(ctx context.Context, text, lang string) (*lookup.Result, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("speech: %s (lang=%s)", text, lang))

	if err, ok := m.Errors[text]; ok {
		return nil, err
	}
	if res, ok := m.Responses[text]; ok {
		return res, nil
	}
	return &lookup.Result{
		Filename: "tts_" + text + ".mp3",
		Data:     AudioData(0x01),
		Extras:   map[string]string{"Source": "Mock speech"},
	}, nil
}

func (m *MockSpeechSource) Name() string       { return "openai-tts" }
func (m *MockSpeechSource) IsAvailable() error { return nil }

// MockDictionarySource mocks the dictionary-audio source.
type MockDictionarySource struct {
	Responses map[string][]*lookup.Result
	Errors    map[string]error
	Calls     []string
}

// Fetch returns the canned results for text; unknown words have no
// recordings.
func (m *MockDictionarySource) Fetch(ctx context.Context, text string) ([]*lookup.Result, error) {
	m.Calls = append(m.Calls, "dictionary: "+text)

	if err, ok := m.Errors[text]; ok {
		return nil, err
	}
	return m.Responses[text], nil
}

func (m *MockDictionarySource) Name() string       { return "dictionary" }
func (m *MockDictionarySource) IsAvailable() error { return nil }

// MockClipSource mocks the pronunciation-clip source.
type MockClipSource struct {
	Responses map[string]*lookup.Result
	Errors    map[string]error
	Calls     []string
}

// Fetch looks up the canned result keyed by "base/reading".
func (m *MockClipSource) Fetch(ctx context.Context, base, reading string) (*lookup.Result, error) {
	key := base + "/" + reading
	m.Calls = append(m.Calls, "clip: "+key)

	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if res, ok := m.Responses[key]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("no clip for %s", key)
}

func (m *MockClipSource) Name() string       { return "clip" }
func (m *MockClipSource) IsAvailable() error { return nil }

// MockSegmenter splits text via a canned table instead of calling a
// language model.
type MockSegmenter struct {
	Readings map[string]string // text -> reading
	Errors   map[string]error
	Calls    []string
}

// Split returns text as its own base and the canned reading, or text
// itself when no reading is configured.
func (m *MockSegmenter) Split(text string) (string, string, error) {
	m.Calls = append(m.Calls, "split: "+text)

	if err, ok := m.Errors[text]; ok {
		return "", "", err
	}
	if reading, ok := m.Readings[text]; ok {
		return text, reading, nil
	}
	return text, text, nil
}

// MemoryBlacklist is an in-memory hash blacklist satisfying both the
// lookup and commit sides of the store.
type MemoryBlacklist struct {
	Hashes map[string]bool
}

// NewMemoryBlacklist creates an empty in-memory blacklist.
func NewMemoryBlacklist(hashes ...string) *MemoryBlacklist {
	m := &MemoryBlacklist{Hashes: make(map[string]bool)}
	for _, h := range hashes {
		m.Hashes[h] = true
	}
	return m
}

func (m *MemoryBlacklist) Contains(hash string) (bool, error) {
	return m.Hashes[hash], nil
}

func (m *MemoryBlacklist) Add(hash string) error {
	if hash != "" {
		m.Hashes[hash] = true
	}
	return nil
}

// ScriptedReviewer is a reviewer with pre-decided outcomes, standing in
// for the dialog in processor tests.
type ScriptedReviewer struct {
	// Decide overrides the decision per candidate. Nil keeps defaults.
	Decide func(entry *retrieve.Entry) retrieve.Decision

	// Cancel makes every review fail with review.ErrCancelled.
	Cancel bool

	Calls int
}

// Review implements review.Reviewer.
func (s *ScriptedReviewer) Review(note *anki.Note, entries []*retrieve.Entry, hideText bool) ([]*retrieve.Entry, error) {
	s.Calls++
	if s.Cancel {
		return nil, review.ErrCancelled
	}
	if len(entries) == 0 {
		return nil, review.ErrNothingToReview
	}
	if s.Decide != nil {
		for _, e := range entries {
			e.Decision = s.Decide(e)
		}
	}
	return entries, nil
}
