package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler derives a display label from a name segment: "merchantName"
// and "merchant_name" both become "Merchant Name". Runs of capitals are kept
// as acronyms ("settleURL" becomes "Settle URL") and "id" is spelled "ID".
func DefaultLabeler(name string) string {
	words := splitWords(name)
	for i, word := range words {
		switch {
		case strings.EqualFold(word, "id"):
			words[i] = "ID"
		case isAcronym(word):
		default:
			runes := []rune(strings.ToLower(word))
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}

// PathLabel labels the last non-index segment of a path, so list item paths
// ("contacts.0.phone") read like their field.
func PathLabel(p Path) string {
	for i := len(p) - 1; i >= 0; i-- {
		if !isIndex(p[i]) {
			return DefaultLabeler(p[i])
		}
	}
	return ""
}

func splitWords(name string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && len(current) > 0 && boundary(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

func boundary(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r), unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		// "URLPath": the P starts a new word.
		return true
	}
	return false
}

func isAcronym(word string) bool {
	if len([]rune(word)) < 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
