// Package models lists the OpenAI models the current API key can use for
// speech synthesis and reading decomposition.
package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListAvailableModels lists the available OpenAI models categorized by type
func (l *Lister) ListAvailableModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .ankiaudio.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ttsModels := []string{}
	chatModels := []string{}
	for _, model := range models.Models {
		modelID := model.ID
		if strings.Contains(modelID, "tts") || strings.Contains(modelID, "audio") {
			ttsModels = append(ttsModels, modelID)
		} else if strings.Contains(modelID, "gpt") {
			chatModels = append(chatModels, modelID)
		}
	}
	sort.Strings(ttsModels)
	sort.Strings(chatModels)

	fmt.Println("Available OpenAI Models:")
	fmt.Println("\nText-to-Speech (TTS) Models:")
	if len(ttsModels) == 0 {
		fmt.Println("  No TTS models found")
	} else {
		for _, model := range ttsModels {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nChat Models (for reading decomposition):")
	for _, model := range chatModels {
		if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
			fmt.Printf("  %s\n", model)
		}
	}

	return nil
}
