package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
)

// FieldConfig builds the resolver configuration from the config file,
// falling back to the built-in field name lists. Keeping the lists in
// configuration means decks with unusual field names need no code change.
func FieldConfig() *field.Config {
	cfg := field.DefaultConfig()
	if keys := viper.GetStringSlice("fields.marker_keys"); len(keys) > 0 {
		cfg.MarkerKeys = keys
	}
	if keys := viper.GetStringSlice("fields.expression_fields"); len(keys) > 0 {
		cfg.ExpressionFields = keys
	}
	if keys := viper.GetStringSlice("fields.reading_fields"); len(keys) > 0 {
		cfg.ReadingFields = keys
	}
	return cfg
}

// DecisionPolicy builds the per-source default decisions from the config
// file, e.g.:
//
//	review:
//	  defaults:
//	    openai-tts: delete
func DecisionPolicy() retrieve.DefaultPolicy {
	policy := retrieve.DefaultDecisionPolicy()
	for source, raw := range viper.GetStringMapString("review.defaults") {
		decision, err := retrieve.ParseDecision(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring review default for %s: %v\n", source, err)
			continue
		}
		policy[source] = decision
	}
	return policy
}
