// Package locale holds the site's two languages: message catalogs, Accept-Language
// matching, and pure functions that resolve bilingual records for one language.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	EN Lang = "en"
	NO Lang = "no"

	Default = EN
	// CookieName holds the visitor's choice between requests.
	CookieName = "lang"
)

var Supported = []Lang{EN, NO}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Norwegian})

// Parse accepts "en" and "no" (case-insensitive) and the Norwegian written standards.
func Parse(s string) (Lang, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return EN, true
	case "no", "nb", "nn":
		return NO, true
	}
	return "", false
}

// Toggle returns the other language. Toggle(Toggle(l)) == l.
func (l Lang) Toggle() Lang {
	if l == NO {
		return EN
	}
	return NO
}

func (l Lang) String() string { return string(l) }

// HTMLLang is the value for the <html lang> attribute.
func (l Lang) HTMLLang() string {
	if l == NO {
		return "nb"
	}
	return "en"
}

// Match picks a language from an Accept-Language header, defaulting to English.
func Match(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	for _, t := range tags {
		base, _ := t.Base()
		if l, ok := Parse(base.String()); ok {
			return l
		}
	}
	_, idx, conf := matcher.Match(tags...)
	if conf >= language.High && idx == 1 {
		return NO
	}
	return Default
}
