// Package retrieve turns resolved field pairings into reviewed audio
// candidates by querying the lookup sources. Individual source failures
// never interrupt a batch; only the aggregate result matters to callers.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/lookup"
)

// Aggregator queries the configured sources for each pairing and collects
// candidate entries in deterministic order: pairing-discovery order first,
// source order within a pairing.
type Aggregator struct {
	sources lookup.Sources
	policy  DefaultPolicy
}

// NewAggregator creates an aggregator. A nil policy uses
// DefaultDecisionPolicy.
func NewAggregator(sources lookup.Sources, policy DefaultPolicy) *Aggregator {
	if policy == nil {
		policy = DefaultDecisionPolicy()
	}
	return &Aggregator{sources: sources, policy: policy}
}

// Retrieve fetches candidates for all pairings. Generic pairings go to the
// speech source and, for English, additionally to the dictionary source.
// Reading pairings go to the clip source. Failures of individual sources
// are absorbed; already-blacklisted clips are skipped without notice.
func (a *Aggregator) Retrieve(ctx context.Context, pairings []*field.Pairing, lang string) []*Entry {
	var entries []*Entry
	for _, p := range pairings {
		if p.Readings {
			entries = append(entries, a.retrieveReading(ctx, p)...)
		} else {
			entries = append(entries, a.retrieveGeneric(ctx, p, lang)...)
		}
	}
	return entries
}

func (a *Aggregator) retrieveGeneric(ctx context.Context, p *field.Pairing, lang string) []*Entry {
	if p.Text == "" {
		return nil
	}

	var entries []*Entry
	if a.sources.Speech != nil {
		res, err := a.sources.Speech.Fetch(ctx, p.Text, lang)
		if err != nil {
			warn(a.sources.Speech.Name(), p.Text, err)
		} else {
			entries = append(entries, a.entry(p, a.sources.Speech.Name(), res))
		}
	}

	if a.sources.Dictionary != nil && strings.HasPrefix(lang, "en") {
		results, err := a.sources.Dictionary.Fetch(ctx, p.Text)
		if err != nil {
			warn(a.sources.Dictionary.Name(), p.Text, err)
		} else {
			for _, res := range results {
				entries = append(entries, a.entry(p, a.sources.Dictionary.Name(), res))
			}
		}
	}
	return entries
}

func (a *Aggregator) retrieveReading(ctx context.Context, p *field.Pairing) []*Entry {
	if p.Base == "" && p.Reading == "" {
		return nil
	}
	if a.sources.Clip == nil {
		return nil
	}

	res, err := a.sources.Clip.Fetch(ctx, p.Base, p.Reading)
	if err != nil {
		if !errors.Is(err, lookup.ErrBlacklisted) {
			warn(a.sources.Clip.Name(), p.Base, err)
		}
		return nil
	}
	return []*Entry{a.entry(p, a.sources.Clip.Name(), res)}
}

func (a *Aggregator) entry(p *field.Pairing, sourceName string, res *lookup.Result) *Entry {
	return &Entry{
		SourceField: p.SourceField,
		DestField:   p.DestField,
		DisplayText: p.DisplayText(),
		Filename:    res.Filename,
		Data:        res.Data,
		Hash:        res.Hash,
		Extras:      res.Extras,
		SourceName:  sourceName,
		Decision:    a.policy.decisionFor(sourceName),
	}
}

func warn(source, text string, err error) {
	fmt.Fprintf(os.Stderr, "Warning: %s lookup for %q failed: %v\n", source, text, err)
}
