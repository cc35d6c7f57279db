// Package keywords expands keywords through the synonym table, matches keyword sets
// against free text and extracts required/preferred keywords from job descriptions.
package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/resume-scorer/internal/tables"
	"github.com/jonathan/resume-scorer/internal/textutil"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// FuzzyThreshold is the minimum normalized Levenshtein similarity for a fuzzy hit
	FuzzyThreshold = 0.85
	// MinFuzzyRunes is the shortest term eligible for fuzzy matching
	MinFuzzyRunes = 5
)

// Engine holds the synonym equivalence classes and the extraction vocabulary.
// It is immutable after New and safe for concurrent use.
type Engine struct {
	classes    map[string][]string // term -> sorted members of its class
	canonical  map[string]string   // term -> canonical name of its class
	vocabulary []string            // every known term, longest first
}

// MatchResult reports which keywords were found in a text
type MatchResult struct {
	Matched    []string          `json:"matched"`
	Missing    []string          `json:"missing"`
	Percentage float64           `json:"percentage"`
	MatchedVia map[string]string `json:"matched_via,omitempty"`
}

// New builds the engine. Synonym entries that share a term are merged into one
// class, so lookups are symmetric even when the table lists a term twice.
func New(t *tables.Tables) *Engine {
	uf := newUnionFind()
	synonyms := t.Synonyms()

	canonicalKeys := make([]string, 0, len(synonyms))
	for canonical, variants := range synonyms {
		canonicalKeys = append(canonicalKeys, canonical)
		uf.add(canonical)
		for _, v := range variants {
			uf.union(canonical, v)
		}
	}
	sort.Strings(canonicalKeys)

	e := &Engine{
		classes:   map[string][]string{},
		canonical: map[string]string{},
	}

	members := map[string][]string{}
	for term := range uf.parent {
		root := uf.find(term)
		members[root] = append(members[root], term)
	}
	for _, group := range members {
		sort.Strings(group)
		for _, term := range group {
			e.classes[term] = group
		}
	}

	// The alphabetically first table key names its class
	for _, key := range canonicalKeys {
		for _, term := range e.classes[key] {
			if _, ok := e.canonical[term]; !ok {
				e.canonical[term] = key
			}
		}
	}

	vocab := map[string]bool{}
	for term := range e.classes {
		vocab[term] = true
	}
	for _, roleKey := range t.RoleKeys() {
		role, _ := t.Role(roleKey)
		for _, kw := range role.Keywords {
			vocab[kw] = true
		}
	}
	for term := range vocab {
		e.vocabulary = append(e.vocabulary, term)
	}
	sort.Slice(e.vocabulary, func(i, j int) bool {
		if len(e.vocabulary[i]) != len(e.vocabulary[j]) {
			return len(e.vocabulary[i]) > len(e.vocabulary[j])
		}
		return e.vocabulary[i] < e.vocabulary[j]
	})
	return e
}

// Canonical returns the canonical name of the keyword's synonym class, or the
// normalized keyword itself when it has no class.
func (e *Engine) Canonical(keyword string) string {
	n := tables.Normalize(keyword)
	if c, ok := e.canonical[n]; ok {
		return c
	}
	return n
}

// GetAllSynonyms returns the keyword's full synonym class, sorted, always including
// the keyword itself. Empty input yields an empty slice.
func (e *Engine) GetAllSynonyms(keyword string) []string {
	n := tables.Normalize(keyword)
	if n == "" {
		return []string{}
	}
	if class, ok := e.classes[n]; ok {
		return append([]string(nil), class...)
	}
	return []string{n}
}

// ExpandKeywords unions the synonym classes of every keyword into a sorted, deduplicated list
func (e *Engine) ExpandKeywords(keywords []string) []string {
	seen := map[string]bool{}
	for _, kw := range keywords {
		for _, s := range e.GetAllSynonyms(kw) {
			seen[s] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SameClass reports whether two keywords are synonyms of each other
func (e *Engine) SameClass(a, b string) bool {
	return e.Canonical(a) == e.Canonical(b)
}

// MatchKeywords checks each keyword (or any of its synonyms) against text. Matching is
// case-insensitive on word boundaries, with fuzzy tolerance for longer terms.
// Keywords are normalized and deduplicated; their first-seen order is kept.
func (e *Engine) MatchKeywords(text string, keywords []string) MatchResult {
	result := MatchResult{
		Matched:    []string{},
		Missing:    []string{},
		MatchedVia: map[string]string{},
	}

	lower := strings.ToLower(text)
	tokens := textutil.Tokens(text)

	seen := map[string]bool{}
	total := 0
	for _, kw := range keywords {
		n := tables.Normalize(kw)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		total++

		if via, ok := e.findTerm(lower, tokens, n); ok {
			result.Matched = append(result.Matched, n)
			if via != n {
				result.MatchedVia[n] = via
			}
			continue
		}
		result.Missing = append(result.Missing, n)
	}

	if total > 0 {
		result.Percentage = types.Round1(float64(len(result.Matched)) / float64(total) * 100)
	}
	return result
}

// findTerm returns the text fragment that satisfied the keyword
func (e *Engine) findTerm(lowerText string, tokens []string, keyword string) (string, bool) {
	terms := e.GetAllSynonyms(keyword)

	for _, term := range terms {
		if textutil.ContainsPhraseLower(lowerText, term) {
			return term, true
		}
	}

	for _, term := range terms {
		if utf8.RuneCountInString(term) < MinFuzzyRunes {
			continue
		}
		if hit, ok := fuzzyFind(tokens, term); ok {
			return hit, true
		}
	}
	return "", false
}

// fuzzyFind compares the term against every window of text tokens with the same word count
func fuzzyFind(tokens []string, term string) (string, bool) {
	width := len(strings.Fields(term))
	if width == 0 || width > len(tokens) {
		return "", false
	}
	for i := 0; i+width <= len(tokens); i++ {
		candidate := strings.Join(tokens[i:i+width], " ")
		if Similarity(candidate, term) >= FuzzyThreshold {
			return candidate, true
		}
	}
	return "", false
}

// Similarity is 1 - distance/longer length, in [0, 1]
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: map[string]string{}}
}

func (u *unionFind) add(x string) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
}

func (u *unionFind) find(x string) string {
	u.add(x)
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
