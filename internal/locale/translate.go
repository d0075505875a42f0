package locale

// Pick returns the text matching the request language, defaulting to French.
func Pick(language Language, french, english string) string {
	if language == LanguageEnglish {
		if english != "" {
			return english
		}
		return french
	}
	if french != "" {
		return french
	}
	return english
}
