// Package textutil provides word-boundary aware text helpers shared by the classifier
// and the keyword engine.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r is part of a word token
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokens splits s into lowercase word tokens. Inner hyphens, apostrophes, dots, slashes,
// plus and hash signs are kept so that "node.js", "ci/cd", "c++" and "c#" survive.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !IsWordRune(r) && !strings.ContainsRune("-'./+#", r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-'./")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// CountPhrase counts case-insensitive, word-boundary occurrences of phrase in text.
// Overlapping occurrences are not counted twice.
func CountPhrase(text, phrase string) int {
	return len(phraseIndexes(strings.ToLower(text), strings.ToLower(strings.TrimSpace(phrase))))
}

// ContainsPhrase reports whether phrase occurs in text on word boundaries
func ContainsPhrase(text, phrase string) bool {
	return CountPhrase(text, phrase) > 0
}

// ContainsPhraseLower is ContainsPhrase for callers that already lowercased both inputs
func ContainsPhraseLower(lowerText, lowerPhrase string) bool {
	return len(phraseIndexes(lowerText, lowerPhrase)) > 0
}

// MaskPhraseLower blanks every word-boundary occurrence of phrase so later scans
// cannot match inside it. Both inputs must already be lowercase.
func MaskPhraseLower(lowerText, lowerPhrase string) string {
	hits := phraseIndexes(lowerText, lowerPhrase)
	if len(hits) == 0 {
		return lowerText
	}
	b := []byte(lowerText)
	for _, start := range hits {
		for i := start; i < start+len(lowerPhrase); i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

func phraseIndexes(text, phrase string) []int {
	if phrase == "" || text == "" {
		return nil
	}

	var hits []int
	offset := 0
	for offset < len(text) {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(phrase)
		if boundaryBefore(text, start, phrase) && boundaryAfter(text, end, phrase) {
			hits = append(hits, start)
			offset = end
			continue
		}
		offset = start + 1
	}
	return hits
}

// shortTermLen is the length below which a hyphen also joins words, so "go"
// does not match inside "go-to-market"
const shortTermLen = 4

// boundaryBefore checks the rune preceding start. Phrases that begin with a
// non-word rune (".net") carry their own boundary.
func boundaryBefore(text string, start int, phrase string) bool {
	if start == 0 || !IsWordRune(firstRune(phrase)) {
		return true
	}
	return !joins(lastRune(text[:start]), phrase)
}

func boundaryAfter(text string, end int, phrase string) bool {
	if end >= len(text) || !IsWordRune(lastRune(phrase)) {
		return true
	}
	return !joins(firstRune(text[end:]), phrase)
}

func joins(r rune, phrase string) bool {
	if IsWordRune(r) {
		return true
	}
	return r == '-' && len(phrase) < shortTermLen
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return 0
	}
	return r
}

// LooksLikeHTML reports whether s contains markup tags
func LooksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	for _, tag := range []string{"<p", "<li", "<ul", "<div", "<br", "<h1", "<h2", "<h3", "<strong", "<span", "<html", "<body"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}
