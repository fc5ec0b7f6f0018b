package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"AudioFormat", flags.AudioFormat, "mp3"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAIVoice", flags.OpenAIVoice, "alloy"},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Side", flags.Side},
		{"Answer", flags.Answer},
		{"Manual", flags.Manual},
		{"ListModels", flags.ListModels},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"Collection", flags.Collection},
		{"BatchFile", flags.BatchFile},
		{"Language", flags.Language},
		{"DictionaryURL", flags.DictionaryURL},
		{"ClipURL", flags.ClipURL},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %q, want empty string", tt.name, tt.value)
			}
		})
	}

	if flags.NoteID != 0 {
		t.Errorf("NoteID = %d, want 0", flags.NoteID)
	}
	if flags.CardID != 0 {
		t.Errorf("CardID = %d, want 0", flags.CardID)
	}
}
