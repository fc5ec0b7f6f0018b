package anki

import "strings"

// languageTokens maps name substrings to language codes. Deck and note-type
// names like "Japanese Core 2k" or "Vokabeln::German" carry enough signal
// for the lookup sources.
var languageTokens = []struct {
	token string
	code  string
}{
	{"japanese", "ja"},
	{"japanisch", "ja"},
	{"mandarin", "zh"},
	{"chinese", "zh"},
	{"hanzi", "zh"},
	{"german", "de"},
	{"deutsch", "de"},
	{"french", "fr"},
	{"spanish", "es"},
	{"russian", "ru"},
	{"bulgarian", "bg"},
	{"korean", "ko"},
	{"english", "en"},
}

// DetectLanguage guesses a language code from deck and note-type names.
// An explicit override wins; the fallback is English.
func DetectLanguage(deckName, modelName, override string) string {
	if override != "" {
		return override
	}
	for _, name := range []string{deckName, modelName} {
		lower := strings.ToLower(name)
		for _, lt := range languageTokens {
			if strings.Contains(lower, lt.token) {
				return lt.code
			}
		}
	}
	return "en"
}

// IsJapaneseModel reports whether a note type opts into reading-based
// (kanji/kana) lookups, matching on the note-type name.
func IsJapaneseModel(modelName string) bool {
	return strings.Contains(strings.ToLower(modelName), "japanese")
}
