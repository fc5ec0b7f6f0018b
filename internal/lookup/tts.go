package lookup

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/ankiaudio/internal"
)

// TTSConfig holds settings for the speech-synthesis source.
type TTSConfig struct {
	OpenAIKey   string
	Model       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	Voice       string  // "alloy", "nova", ...
	Speed       float64 // 0.25 to 4.0
	Format      string  // "mp3" or "wav"
	EnableCache bool
	CacheDir    string
}

// DefaultTTSConfig returns the default speech-synthesis settings.
func DefaultTTSConfig() *TTSConfig {
	return &TTSConfig{
		Model:  "gpt-4o-mini-tts",
		Voice:  "alloy",
		Speed:  1.0,
		Format: "mp3",
	}
}

// OpenAISpeech synthesizes pronunciations via the OpenAI TTS API.
// Synthesized voices carry no content hash: they are generated, not
// served from a fixed catalogue, so blacklisting them has no meaning.
type OpenAISpeech struct {
	client *openai.Client
	config *TTSConfig
}

// NewOpenAISpeech creates the speech-synthesis source.
func NewOpenAISpeech(config *TTSConfig) (*OpenAISpeech, error) {
	if config == nil {
		config = DefaultTTSConfig()
	}
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.EnableCache && config.CacheDir != "" {
		if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	return &OpenAISpeech{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// Name returns the source name.
func (s *OpenAISpeech) Name() string {
	return "openai-tts"
}

// IsAvailable checks that the source is configured.
func (s *OpenAISpeech) IsAvailable() error {
	if s.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// Fetch synthesizes text and returns the audio.
func (s *OpenAISpeech) Fetch(ctx context.Context, text, lang string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	if s.config.EnableCache {
		if data, err := os.ReadFile(s.cacheFilePath(text)); err == nil {
			return s.result(text, lang, data), nil
		}
	}

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.config.Model),
		Input: text,
		Voice: openai.SpeechVoice(s.config.Voice),
		Speed: s.config.Speed,
	}
	switch s.config.Format {
	case "wav":
		req.ResponseFormat = openai.SpeechResponseFormatWav
	default:
		req.ResponseFormat = openai.SpeechResponseFormatMp3
	}

	response, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	if s.config.EnableCache {
		cacheFile := s.cacheFilePath(text)
		if err := os.MkdirAll(filepath.Dir(cacheFile), 0755); err == nil {
			_ = os.WriteFile(cacheFile, data, 0644) // Ignore cache errors
		}
	}

	return s.result(text, lang, data), nil
}

func (s *OpenAISpeech) result(text, lang string, data []byte) *Result {
	return &Result{
		Filename: internal.MediaFilename("tts_"+lang, text, s.config.Format),
		Data:     data,
		Extras: map[string]string{
			"Source": "OpenAI TTS",
			"Model":  s.config.Model,
			"Voice":  s.config.Voice,
		},
	}
}

// cacheFilePath derives the cache location from the text and voice
// settings, sharded into two-character subdirectories.
func (s *OpenAISpeech) cacheFilePath(text string) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(s.config.Model))
	h.Write([]byte(s.config.Voice))
	h.Write([]byte(fmt.Sprintf("%.2f", s.config.Speed)))
	hash := hex.EncodeToString(h.Sum(nil))
	return filepath.Join(s.config.CacheDir, hash[:2], hash[2:]+"."+s.config.Format)
}
