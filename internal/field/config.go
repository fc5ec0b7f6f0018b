package field

// Config lists the field-name conventions the resolver matches against.
// All entries must be lower case; note field names are lowered before
// comparison.
type Config struct {
	// MarkerKeys mark a field as an audio download destination, either as
	// the whole name or as a substring of it.
	MarkerKeys []string

	// ExpressionFields are the source-text candidates for generic lookups
	// when the destination field is named exactly after a marker key.
	ExpressionFields []string

	// ReadingFields are the source-text candidates for reading-based
	// lookups, including native-script spellings.
	ReadingFields []string
}

// DefaultConfig returns the resolver configuration matching the field
// names most decks use.
func DefaultConfig() *Config {
	return &Config{
		MarkerKeys:       []string{"audio", "sound"},
		ExpressionFields: []string{"expression", "hanzi", "front", "back"},
		ReadingFields:    []string{"reading", "kana", "かな", "仮名"},
	}
}
