package segment

import (
	"errors"
	"testing"
)

func TestRubySegmenterSplit(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantBase    string
		wantReading string
	}{
		{
			name:        "single ruby token",
			text:        "猫[ねこ]",
			wantBase:    "猫",
			wantReading: "ねこ",
		},
		{
			name:        "multiple ruby tokens",
			text:        "日本[にほん] 語[ご]",
			wantBase:    "日本語",
			wantReading: "にほんご",
		},
		{
			name:        "mixed ruby and plain",
			text:        "お 水[みず]",
			wantBase:    "お水",
			wantReading: "おみず",
		},
		{
			name:        "no ruby",
			text:        "ねこ",
			wantBase:    "ねこ",
			wantReading: "ねこ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, reading, err := RubySegmenter{}.Split(tt.text)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			if base != tt.wantBase {
				t.Errorf("Expected base %q, got %q", tt.wantBase, base)
			}
			if reading != tt.wantReading {
				t.Errorf("Expected reading %q, got %q", tt.wantReading, reading)
			}
		})
	}
}

func TestHasRuby(t *testing.T) {
	if !HasRuby("猫[ねこ]") {
		t.Error("Expected ruby notation to be detected")
	}
	if HasRuby("ねこ") {
		t.Error("Expected plain text to have no ruby notation")
	}
}

func TestIdentitySegmenter(t *testing.T) {
	base, reading, err := NewIdentity().Split("text")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if base != "text" || reading != "text" {
		t.Errorf("Expected identity split, got %q/%q", base, reading)
	}
}

type fixedSegmenter struct {
	base    string
	reading string
	err     error
}

func (f fixedSegmenter) Split(string) (string, string, error) {
	return f.base, f.reading, f.err
}

func TestAutoPrefersRuby(t *testing.T) {
	seg := NewAuto(fixedSegmenter{base: "fallback", reading: "fallback"})

	base, reading, err := seg.Split("猫[ねこ]")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if base != "猫" || reading != "ねこ" {
		t.Errorf("Expected ruby split, got %q/%q", base, reading)
	}
}

func TestAutoFallsBack(t *testing.T) {
	seg := NewAuto(fixedSegmenter{base: "ねこ", reading: "ねこ"})

	base, reading, err := seg.Split("猫")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if base != "ねこ" || reading != "ねこ" {
		t.Errorf("Expected fallback split, got %q/%q", base, reading)
	}
}

func TestAutoPropagatesFallbackError(t *testing.T) {
	wantErr := errors.New("model unavailable")
	seg := NewAuto(fixedSegmenter{err: wantErr})

	_, _, err := seg.Split("猫")
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected fallback error, got %v", err)
	}
}

func TestAutoNilFallback(t *testing.T) {
	base, reading, err := NewAuto(nil).Split("plain")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if base != "plain" || reading != "plain" {
		t.Errorf("Expected identity fallback, got %q/%q", base, reading)
	}
}
