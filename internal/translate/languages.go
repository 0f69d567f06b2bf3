package translate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLang is the target language used when none is configured.
const DefaultLang = "hi"

var supportedCodes = []string{"hi", "fr", "es", "de", "zh", "ja", "ko", "ar", "pt", "ru", "it", "nl"}

// Language describes a supported target language.
type Language struct {
	Code   string
	Name   string
	Native string
}

// Label renders "Name (Native)".
func (l Language) Label() string {
	if l.Native == "" || l.Native == l.Name {
		return l.Name
	}
	return l.Name + " (" + l.Native + ")"
}

// Languages returns the supported target languages in menu order.
func Languages() []Language {
	english := display.English.Languages()
	out := make([]Language, 0, len(supportedCodes))
	for _, code := range supportedCodes {
		tag := language.Make(code)
		out = append(out, Language{
			Code:   code,
			Name:   english.Name(tag),
			Native: display.Self.Name(tag),
		})
	}
	return out
}

// LanguageCodes returns the supported codes in menu order.
func LanguageCodes() []string {
	return append([]string(nil), supportedCodes...)
}

// Lookup finds a supported language by code, ignoring case and region.
func Lookup(code string) (Language, bool) {
	normalized := normalizeCode(code)
	for _, lang := range Languages() {
		if lang.Code == normalized {
			return lang, true
		}
	}
	return Language{}, false
}

func normalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}
