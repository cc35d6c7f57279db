package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"simple", "Led a Team", []string{"led", "a", "team"}},
		{"punctuation", "Built APIs, tools; and dashboards.", []string{"built", "apis", "tools", "and", "dashboards"}},
		{"tech terms", "Node.js, CI/CD, C++ and C#", []string{"node.js", "ci/cd", "c++", "and", "c#"}},
		{"hyphenated", "co-founded a start-up", []string{"co-founded", "a", "start-up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.in))
		})
	}
}

func TestCountPhrase(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   int
	}{
		{"single hit", "Worked on various projects", "worked on", 1},
		{"case insensitive", "WORKED ON it", "worked on", 1},
		{"repeated", "various things and various more", "various", 2},
		{"no partial word", "Reworked online flows", "worked on", 0},
		{"suffix is not a hit", "javascript developer", "java", 0},
		{"punctuation boundary", "python, go.", "go", 1},
		{"short term inside hyphenated word", "go-to-market plan", "go", 0},
		{"long term next to hyphen", "python-based tooling", "python", 1},
		{"symbol phrase", "Expert in C++ and c++17", "c++", 2},
		{"empty phrase", "anything", "", 0},
		{"empty text", "", "go", 0},
		{"multibyte letter before", "résumégo", "go", 0},
		{"multibyte punctuation before", "café—go", "go", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountPhrase(tt.text, tt.phrase))
		})
	}
}

func TestLastRune(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"", 0},
		{"go", 'o'},
		{"résumé", 'é'},
		{"ok\xff", '\uFFFD'},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, lastRune(tt.in))
		})
	}
}

func TestCountPhrase_LongText(t *testing.T) {
	text := strings.Repeat("go and sql, ", 20000)
	assert.Equal(t, 20000, CountPhrase(text, "go"))
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("<p>Required:</p><ul><li>Go</li></ul>"))
	assert.False(t, LooksLikeHTML("Required: Go, SQL. 5 < 6 years"))
}
