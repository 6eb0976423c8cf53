package service

import "strings"

const DefaultLanguageCode = "en-US"

var recognitionLanguages = map[string]string{
	"malayalam": "ml-IN",
	"hindi":     "hi-IN",
	"arabic":    "ar-SA",
	"english":   "en-US",
}

// ResolveLanguageCode — название языка из приложения в код распознавания.
// Неизвестное или пустое значение даёт en-US.
func ResolveLanguageCode(label string) string {
	if code, ok := recognitionLanguages[strings.ToLower(strings.TrimSpace(label))]; ok {
		return code
	}
	return DefaultLanguageCode
}
