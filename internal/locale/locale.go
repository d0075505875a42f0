package locale

import "strings"

// Language is one of the fixed content languages of the site.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

// DefaultLanguage 是访客未选择语言时使用的语言。
const DefaultLanguage = LanguageFrench

// Supported lists the content languages in editing order.
var Supported = []Language{LanguageFrench, LanguageEnglish}

type Preference struct {
	Language Language
	Locale   string
	HTMLLang string
}

// Other returns the opposite language of the fr/en pair.
func (l Language) Other() Language {
	if l == LanguageEnglish {
		return LanguageFrench
	}
	return LanguageEnglish
}

func (l Language) String() string {
	return string(l)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageFrench || l == LanguageEnglish
}

func NormalizeLanguage(raw string) Language {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "fr") {
		return LanguageFrench
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func PreferenceForLanguage(language Language) Preference {
	if language == LanguageEnglish {
		return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en"}
	}
	return Preference{Language: LanguageFrench, Locale: "fr_FR", HTMLLang: "fr"}
}
