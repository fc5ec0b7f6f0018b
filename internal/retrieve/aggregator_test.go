package retrieve_test

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/lookup"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
	"codeberg.org/snonux/ankiaudio/internal/testutil"
)

func genericPairing(text string) *field.Pairing {
	return &field.Pairing{SourceField: "Expression", DestField: "Audio", Text: text}
}

func readingPairing(base, reading string) *field.Pairing {
	return &field.Pairing{
		SourceField: "Reading", DestField: "Audio",
		Base: base, Reading: reading, Readings: true,
	}
}

func TestRetrieveGeneric(t *testing.T) {
	speech := &testutil.MockSpeechSource{}
	agg := retrieve.NewAggregator(lookup.Sources{Speech: speech}, nil)

	entries := agg.Retrieve(context.Background(), []*field.Pairing{genericPairing("hello")}, "de")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.SourceName != "openai-tts" {
		t.Errorf("Expected source 'openai-tts', got '%s'", e.SourceName)
	}
	if e.DestField != "Audio" || e.SourceField != "Expression" {
		t.Errorf("Unexpected field pairing: %s -> %s", e.SourceField, e.DestField)
	}
	if e.Decision != retrieve.DecisionKeep {
		t.Errorf("Expected default decision keep for TTS, got %s", e.Decision)
	}

	if len(speech.Calls) != 1 {
		t.Errorf("Expected 1 speech call, got %d", len(speech.Calls))
	}
}

func TestRetrieveDictionaryOnlyForEnglish(t *testing.T) {
	dict := &testutil.MockDictionarySource{
		Responses: map[string][]*lookup.Result{
			"hello": {{Filename: "dict_0.mp3", Data: testutil.AudioData(0x02)}},
		},
	}
	speech := &testutil.MockSpeechSource{}
	agg := retrieve.NewAggregator(lookup.Sources{Speech: speech, Dictionary: dict}, nil)

	entries := agg.Retrieve(context.Background(), []*field.Pairing{genericPairing("hello")}, "en")
	if len(entries) != 2 {
		t.Fatalf("Expected speech plus dictionary entry, got %d", len(entries))
	}
	if entries[1].SourceName != "dictionary" {
		t.Errorf("Expected dictionary entry second, got '%s'", entries[1].SourceName)
	}
	if entries[1].Decision != retrieve.DecisionAdd {
		t.Errorf("Expected default decision add for dictionary, got %s", entries[1].Decision)
	}

	// Non-English language skips the dictionary source entirely.
	dict.Calls = nil
	entries = agg.Retrieve(context.Background(), []*field.Pairing{genericPairing("hello")}, "ja")
	if len(entries) != 1 {
		t.Errorf("Expected only speech entry for ja, got %d", len(entries))
	}
	if len(dict.Calls) != 0 {
		t.Errorf("Expected no dictionary calls for ja, got %v", dict.Calls)
	}
}

func TestRetrieveReading(t *testing.T) {
	clip := &testutil.MockClipSource{
		Responses: map[string]*lookup.Result{
			"猫/ねこ": {Filename: "clip.mp3", Data: testutil.AudioData(0x03), Hash: "h1"},
		},
	}
	agg := retrieve.NewAggregator(lookup.Sources{Clip: clip}, nil)

	entries := agg.Retrieve(context.Background(), []*field.Pairing{readingPairing("猫", "ねこ")}, "ja")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Hash != "h1" {
		t.Errorf("Expected hash 'h1', got '%s'", entries[0].Hash)
	}
	if entries[0].Decision != retrieve.DecisionAdd {
		t.Errorf("Expected default decision add for clip, got %s", entries[0].Decision)
	}
}

func TestRetrieveOrderFollowsPairings(t *testing.T) {
	speech := &testutil.MockSpeechSource{}
	clip := &testutil.MockClipSource{
		Responses: map[string]*lookup.Result{
			"猫/ねこ": {Filename: "clip.mp3", Data: testutil.AudioData(0x03)},
		},
	}
	agg := retrieve.NewAggregator(lookup.Sources{Speech: speech, Clip: clip}, nil)

	pairings := []*field.Pairing{
		genericPairing("first"),
		readingPairing("猫", "ねこ"),
		genericPairing("second"),
	}
	entries := agg.Retrieve(context.Background(), pairings, "ja")
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].DisplayText != "first" || entries[2].DisplayText != "second" {
		t.Errorf("Entries out of pairing order: %q, %q", entries[0].DisplayText, entries[2].DisplayText)
	}
	if entries[1].SourceName != "clip" {
		t.Errorf("Expected clip entry in the middle, got '%s'", entries[1].SourceName)
	}
}

func TestRetrieveAbsorbsSourceFailures(t *testing.T) {
	speech := &testutil.MockSpeechSource{
		Errors: map[string]error{"broken": errors.New("api down")},
	}
	agg := retrieve.NewAggregator(lookup.Sources{Speech: speech}, nil)

	pairings := []*field.Pairing{genericPairing("broken"), genericPairing("fine")}
	entries := agg.Retrieve(context.Background(), pairings, "de")
	if len(entries) != 1 {
		t.Fatalf("Expected the healthy pairing to survive, got %d entries", len(entries))
	}
	if entries[0].DisplayText != "fine" {
		t.Errorf("Unexpected surviving entry: %q", entries[0].DisplayText)
	}
}

func TestRetrieveSkipsBlacklistedClipsSilently(t *testing.T) {
	clip := &testutil.MockClipSource{
		Errors: map[string]error{"猫/ねこ": lookup.ErrBlacklisted},
	}
	agg := retrieve.NewAggregator(lookup.Sources{Clip: clip}, nil)

	entries := agg.Retrieve(context.Background(), []*field.Pairing{readingPairing("猫", "ねこ")}, "ja")
	if len(entries) != 0 {
		t.Errorf("Expected blacklisted clip to be dropped, got %d entries", len(entries))
	}
}

func TestRetrieveSkipsEmptyPairings(t *testing.T) {
	speech := &testutil.MockSpeechSource{}
	agg := retrieve.NewAggregator(lookup.Sources{Speech: speech}, nil)

	entries := agg.Retrieve(context.Background(), []*field.Pairing{genericPairing("")}, "en")
	if len(entries) != 0 {
		t.Errorf("Expected no entries for empty text, got %d", len(entries))
	}
	if len(speech.Calls) != 0 {
		t.Errorf("Expected no source calls for empty text, got %v", speech.Calls)
	}
}

func TestRetrieveCustomPolicy(t *testing.T) {
	speech := &testutil.MockSpeechSource{}
	policy := retrieve.DefaultPolicy{"openai-tts": retrieve.DecisionAdd}
	agg := retrieve.NewAggregator(lookup.Sources{Speech: speech}, policy)

	entries := agg.Retrieve(context.Background(), []*field.Pairing{genericPairing("hello")}, "de")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Decision != retrieve.DecisionAdd {
		t.Errorf("Expected policy override to add, got %s", entries[0].Decision)
	}
}

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"add", "keep", "delete", "blacklist"} {
		d, err := retrieve.ParseDecision(s)
		if err != nil {
			t.Errorf("ParseDecision(%q) failed: %v", s, err)
		}
		if d.String() != s {
			t.Errorf("Round trip mismatch: %q -> %q", s, d.String())
		}
	}

	if _, err := retrieve.ParseDecision("maybe"); err == nil {
		t.Error("Expected error for unknown decision")
	}
}
