package segment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAISegmenter asks a GPT model for the phonetic reading of text that
// carries no ruby notation of its own.
type OpenAISegmenter struct {
	apiKey string
	client *openai.Client
}

// NewOpenAISegmenter creates a new OpenAI-backed segmenter.
func NewOpenAISegmenter(apiKey string) *OpenAISegmenter {
	return &OpenAISegmenter{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Split returns the text unchanged as base and its kana reading as the
// second component.
func (s *OpenAISegmenter) Split(text string) (string, string, error) {
	if s.apiKey == "" {
		return "", "", fmt.Errorf("OpenAI API key not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You convert Japanese text to its kana reading. " +
					"Respond with only the reading in hiragana, nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   100,
		Temperature: 0,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", "", fmt.Errorf("no reading returned")
	}

	reading := strings.TrimSpace(resp.Choices[0].Message.Content)
	return text, reading, nil
}
