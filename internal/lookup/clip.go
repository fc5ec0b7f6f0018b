package lookup

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/snonux/ankiaudio/internal"
)

// ClipConfig holds settings for the pronunciation-clip source.
type ClipConfig struct {
	// BaseURL is queried as BaseURL?kanji=<base>&kana=<reading> and
	// returns raw audio bytes.
	BaseURL string

	// RejectHashes lists content hashes the endpoint serves as "no
	// recording available" placeholder clips. Matching downloads are
	// treated as failures, not candidates.
	RejectHashes []string
}

// ClipClient fetches recorded pronunciation clips for a base form plus
// reading. Clips come from a fixed catalogue, so their md5 hash identifies
// the recording and supports blacklisting.
type ClipClient struct {
	config    *ClipConfig
	http      *breakerClient
	blacklist Blacklist
}

// NewClipClient creates the pronunciation-clip source. The blacklist is
// consulted before a candidate is returned; a nil blacklist disables the
// check. A nil client uses a default HTTP client with timeouts.
func NewClipClient(config *ClipConfig, client *http.Client, bl Blacklist) (*ClipClient, error) {
	if config == nil || config.BaseURL == "" {
		return nil, fmt.Errorf("clip base URL is required")
	}
	var doer httpDoer
	if client != nil {
		doer = client
	}
	return &ClipClient{
		config:    config,
		http:      newBreakerClient("clip", doer),
		blacklist: bl,
	}, nil
}

// Name returns the source name.
func (c *ClipClient) Name() string {
	return "clip"
}

// IsAvailable checks that the source is configured.
func (c *ClipClient) IsAvailable() error {
	if c.config.BaseURL == "" {
		return fmt.Errorf("clip base URL not configured")
	}
	return nil
}

// Fetch downloads the clip for the given base form and reading. A clip
// whose content hash is already blacklisted fails with ErrBlacklisted and
// is never surfaced to the user.
func (c *ClipClient) Fetch(ctx context.Context, base, reading string) (*Result, error) {
	if strings.TrimSpace(base) == "" && strings.TrimSpace(reading) == "" {
		return nil, fmt.Errorf("empty text")
	}

	q := url.Values{}
	q.Set("kanji", base)
	q.Set("kana", reading)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clip source returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clip source returned no data")
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])

	for _, rejected := range c.config.RejectHashes {
		if hash == rejected {
			return nil, fmt.Errorf("clip source has no recording for %q", base)
		}
	}

	if c.blacklist != nil {
		listed, err := c.blacklist.Contains(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to check blacklist: %w", err)
		}
		if listed {
			return nil, ErrBlacklisted
		}
	}

	return &Result{
		Filename: internal.MediaFilename("clip", base+reading, "mp3"),
		Data:     data,
		Hash:     hash,
		Extras: map[string]string{
			"Source": "Pronunciation clip",
		},
	}, nil
}
