package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/snonux/ankiaudio/internal"
)

// DictionaryConfig holds settings for the dictionary-audio source.
type DictionaryConfig struct {
	// BaseURL is queried as BaseURL?word=<text> and must return a JSON
	// body of the form {"pronunciations":[{"url":..., "speaker":...}]}.
	BaseURL string
}

// DictionaryClient fetches recorded dictionary pronunciations. The source
// only covers English; callers gate it on the language code.
type DictionaryClient struct {
	config *DictionaryConfig
	http   *breakerClient
}

type dictionaryResponse struct {
	Pronunciations []struct {
		URL     string `json:"url"`
		Speaker string `json:"speaker"`
		Region  string `json:"region"`
	} `json:"pronunciations"`
}

// NewDictionaryClient creates the dictionary-audio source. A nil client
// uses a default HTTP client with timeouts.
func NewDictionaryClient(config *DictionaryConfig, client *http.Client) (*DictionaryClient, error) {
	if config == nil || config.BaseURL == "" {
		return nil, fmt.Errorf("dictionary base URL is required")
	}
	var doer httpDoer
	if client != nil {
		doer = client
	}
	return &DictionaryClient{
		config: config,
		http:   newBreakerClient("dictionary", doer),
	}, nil
}

// Name returns the source name.
func (d *DictionaryClient) Name() string {
	return "dictionary"
}

// IsAvailable checks that the source is configured.
func (d *DictionaryClient) IsAvailable() error {
	if d.config.BaseURL == "" {
		return fmt.Errorf("dictionary base URL not configured")
	}
	return nil
}

// Fetch returns all recorded pronunciations for text, possibly none.
func (d *DictionaryClient) Fetch(ctx context.Context, text string) ([]*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	listURL := d.config.BaseURL + "?word=" + url.QueryEscape(text)
	body, err := d.get(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var parsed dictionaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary response: %w", err)
	}

	var results []*Result
	for i, p := range parsed.Pronunciations {
		if p.URL == "" {
			continue
		}
		data, err := d.get(ctx, p.URL)
		if err != nil || len(data) == 0 {
			continue
		}
		extras := map[string]string{"Source": "Dictionary"}
		if p.Speaker != "" {
			extras["Speaker"] = p.Speaker
		}
		if p.Region != "" {
			extras["Region"] = p.Region
		}
		results = append(results, &Result{
			Filename: internal.MediaFilename(fmt.Sprintf("dict_%d", i), text, "mp3"),
			Data:     data,
			Extras:   extras,
		})
	}
	return results, nil
}

func (d *DictionaryClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
