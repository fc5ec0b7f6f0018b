package lookup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOpenAISpeechRequiresKey(t *testing.T) {
	if _, err := NewOpenAISpeech(&TTSConfig{}); err == nil {
		t.Error("Expected error for missing API key")
	}
	if _, err := NewOpenAISpeech(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestDefaultTTSConfig(t *testing.T) {
	cfg := DefaultTTSConfig()

	if cfg.Model != "gpt-4o-mini-tts" {
		t.Errorf("Expected model 'gpt-4o-mini-tts', got '%s'", cfg.Model)
	}
	if cfg.Voice != "alloy" {
		t.Errorf("Expected voice 'alloy', got '%s'", cfg.Voice)
	}
	if cfg.Speed != 1.0 {
		t.Errorf("Expected speed 1.0, got %f", cfg.Speed)
	}
	if cfg.Format != "mp3" {
		t.Errorf("Expected format 'mp3', got '%s'", cfg.Format)
	}
}

func TestCacheFilePath(t *testing.T) {
	speech, err := NewOpenAISpeech(&TTSConfig{
		OpenAIKey: "test-key",
		Model:     "tts-1",
		Voice:     "nova",
		Speed:     1.0,
		Format:    "mp3",
		CacheDir:  "/tmp/cache",
	})
	if err != nil {
		t.Fatalf("NewOpenAISpeech failed: %v", err)
	}

	path := speech.cacheFilePath("hello")
	if !strings.HasPrefix(path, "/tmp/cache/") {
		t.Errorf("Expected cache path under cache dir, got %s", path)
	}
	if !strings.HasSuffix(path, ".mp3") {
		t.Errorf("Expected mp3 suffix, got %s", path)
	}

	// Same input, same path; different voice, different path.
	if speech.cacheFilePath("hello") != path {
		t.Error("Expected deterministic cache path")
	}

	other, err := NewOpenAISpeech(&TTSConfig{
		OpenAIKey: "test-key",
		Model:     "tts-1",
		Voice:     "alloy",
		Speed:     1.0,
		Format:    "mp3",
		CacheDir:  "/tmp/cache",
	})
	if err != nil {
		t.Fatalf("NewOpenAISpeech failed: %v", err)
	}
	if other.cacheFilePath("hello") == path {
		t.Error("Expected voice to influence the cache path")
	}
}

func TestFetchServesFromCache(t *testing.T) {
	cacheDir := t.TempDir()
	speech, err := NewOpenAISpeech(&TTSConfig{
		OpenAIKey:   "test-key",
		Model:       "tts-1",
		Voice:       "nova",
		Speed:       1.0,
		Format:      "mp3",
		EnableCache: true,
		CacheDir:    cacheDir,
	})
	if err != nil {
		t.Fatalf("NewOpenAISpeech failed: %v", err)
	}

	// Pre-seed the cache so Fetch never talks to the API.
	cached := []byte("cached audio")
	cacheFile := speech.cacheFilePath("hello")
	if err := os.MkdirAll(filepath.Dir(cacheFile), 0755); err != nil {
		t.Fatalf("Failed to create cache dir: %v", err)
	}
	if err := os.WriteFile(cacheFile, cached, 0644); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	res, err := speech.Fetch(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(res.Data) != "cached audio" {
		t.Errorf("Expected cached audio, got %q", res.Data)
	}
	if res.Hash != "" {
		t.Error("Synthesized audio must not carry a blacklist hash")
	}
	if res.Extras["Voice"] != "nova" {
		t.Errorf("Unexpected extras: %v", res.Extras)
	}
}

func TestFetchLive(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping: OPENAI_API_KEY not set")
	}

	speech, err := NewOpenAISpeech(&TTSConfig{
		OpenAIKey: apiKey,
		Model:     "tts-1",
		Voice:     "alloy",
		Speed:     1.0,
		Format:    "mp3",
	})
	if err != nil {
		t.Fatalf("NewOpenAISpeech failed: %v", err)
	}

	res, err := speech.Fetch(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(res.Data) == 0 {
		t.Error("Expected audio data")
	}
}
