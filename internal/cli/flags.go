package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Collection string
	NoteID     int64
	CardID     int64
	BatchFile  string
	Side       bool
	Answer     bool
	Manual     bool
	Language   string
	ListModels bool

	// Audio flags
	AudioFormat string

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64

	// Lookup endpoint flags
	DictionaryURL string
	ClipURL       string

	// Blacklist flags
	BlacklistPath string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AudioFormat: "mp3",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
		OpenAISpeed: 1.0,
	}
}
