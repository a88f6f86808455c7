package mood

import "strings"

// languageHints resolves UI language codes to the word used in the
// playlist search query.
var languageHints = map[string]string{
	"en": "english",
	"hi": "hindi",
	"ta": "tamil",
}

// LanguageCodes lists the supported selector codes.
var LanguageCodes = []string{"en", "hi", "ta"}

// Language resolves a language code to its search hint. Codes are
// trimmed and lowercased before lookup; unknown codes default to english.
func Language(code string) string {
	if hint, ok := languageHints[strings.ToLower(strings.TrimSpace(code))]; ok {
		return hint
	}
	return "english"
}
