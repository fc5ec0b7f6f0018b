package retrieve

import "fmt"

// Decision is the user's disposition for one retrieved candidate.
type Decision int

const (
	// DecisionAdd stores the audio and puts a sound reference on the note.
	DecisionAdd Decision = iota
	// DecisionKeep stores the audio in the media folder only.
	DecisionKeep
	// DecisionDelete discards the audio.
	DecisionDelete
	// DecisionBlacklist discards the audio and suppresses its hash forever.
	DecisionBlacklist
)

func (d Decision) String() string {
	switch d {
	case DecisionAdd:
		return "add"
	case DecisionKeep:
		return "keep"
	case DecisionDelete:
		return "delete"
	case DecisionBlacklist:
		return "blacklist"
	default:
		return "unknown"
	}
}

// ParseDecision converts a configuration string into a Decision.
func ParseDecision(s string) (Decision, error) {
	switch s {
	case "add":
		return DecisionAdd, nil
	case "keep":
		return DecisionKeep, nil
	case "delete":
		return DecisionDelete, nil
	case "blacklist":
		return DecisionBlacklist, nil
	}
	return DecisionDelete, fmt.Errorf("unknown decision %q", s)
}

// Entry is one retrieved-but-undecided audio candidate awaiting user
// disposition.
type Entry struct {
	SourceField string
	DestField   string
	DisplayText string

	Filename string
	Data     []byte
	Hash     string
	Extras   map[string]string

	// SourceName identifies which lookup source produced the entry.
	SourceName string

	Decision Decision
}

// DefaultPolicy maps a source name to the decision a candidate from that
// source starts out with. Which radio button starts checked is
// presentation policy, so it is data, not code.
type DefaultPolicy map[string]Decision

// DefaultDecisionPolicy reflects source confidence: catalogue recordings
// lean toward adding, synthesized voices toward keeping for a listen
// first.
func DefaultDecisionPolicy() DefaultPolicy {
	return DefaultPolicy{
		"clip":       DecisionAdd,
		"dictionary": DecisionAdd,
		"openai-tts": DecisionKeep,
	}
}

// decisionFor returns the default decision for a source, falling back to
// Delete for sources the policy does not know.
func (p DefaultPolicy) decisionFor(sourceName string) Decision {
	if d, ok := p[sourceName]; ok {
		return d
	}
	return DecisionDelete
}
