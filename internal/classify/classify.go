// Package classify assigns verb tiers to bullets and detects vague phrases and passive voice.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/tables"
	"github.com/jonathan/resume-scorer/internal/textutil"
)

// VerbTier is the ordinal strength of a bullet's leading verb
type VerbTier struct {
	Tier   int     `json:"tier"`
	Label  string  `json:"label"`
	Points float64 `json:"points"`
	Match  string  `json:"match,omitempty"`
}

// Unclassified is the tier returned when no dictionary entry matches
var Unclassified = VerbTier{Tier: 0, Label: "weak", Points: 0}

// VagueResult is the outcome of scanning text for vague phrases
type VagueResult struct {
	Count         int            `json:"count"`
	Score         float64        `json:"score"`
	FoundPhrases  []string       `json:"found_phrases"`
	Occurrences   map[string]int `json:"occurrences"`
	BreakdownTier string         `json:"breakdown_tier"`
}

// PassiveResult is the outcome of scanning text for passive constructions
type PassiveResult struct {
	Count   int      `json:"count"`
	Matches []string `json:"matches"`
}

type verbEntry struct {
	tokens []string
	phrase string
	tier   VerbTier
}

// Classifier is safe for concurrent use; it holds only read-only indexes built at construction.
type Classifier struct {
	verbs        []verbEntry
	vaguePhrases []string
}

// New builds a classifier from the given tables
func New(t *tables.Tables) *Classifier {
	c := &Classifier{vaguePhrases: t.VaguePhrases()}

	seen := map[string]bool{}
	for _, def := range t.VerbTiers() {
		for _, verb := range def.Verbs {
			if seen[verb] {
				continue
			}
			seen[verb] = true
			c.verbs = append(c.verbs, verbEntry{
				tokens: textutil.Tokens(verb),
				phrase: verb,
				tier:   VerbTier{Tier: def.Tier, Label: def.Label, Points: def.Points},
			})
		}
	}

	// Most specific (most tokens) first so multi-word phrases beat their leading verb
	sort.SliceStable(c.verbs, func(i, j int) bool {
		return len(c.verbs[i].tokens) > len(c.verbs[j].tokens)
	})
	return c
}

// ClassifyBullet returns the tier of the bullet's leading verb or phrase.
// Empty or unmatched text is Tier 0.
func (c *Classifier) ClassifyBullet(text string) VerbTier {
	tokens := textutil.Tokens(text)
	if len(tokens) == 0 {
		return Unclassified
	}

	for _, entry := range c.verbs {
		if hasPrefix(tokens, entry.tokens) {
			tier := entry.tier
			tier.Match = entry.phrase
			return tier
		}
	}
	return Unclassified
}

func hasPrefix(tokens, prefix []string) bool {
	if len(prefix) == 0 || len(prefix) > len(tokens) {
		return false
	}
	for i := range prefix {
		if tokens[i] != prefix[i] {
			return false
		}
	}
	return true
}

// DetectVague counts every word-boundary occurrence of every vague phrase in text
func (c *Classifier) DetectVague(text string) VagueResult {
	result := VagueResult{
		FoundPhrases: []string{},
		Occurrences:  map[string]int{},
	}

	lower := strings.ToLower(text)
	for _, phrase := range c.vaguePhrases {
		n := textutil.CountPhrase(lower, phrase)
		if n == 0 {
			continue
		}
		result.Count += n
		result.Occurrences[phrase] = n
		result.FoundPhrases = append(result.FoundPhrases, phrase)
	}
	sort.Strings(result.FoundPhrases)

	result.Score, result.BreakdownTier = VagueScore(result.Count)
	return result
}

// VagueScore maps a vague phrase count to points out of 5
func VagueScore(count int) (float64, string) {
	switch {
	case count <= 0:
		return 5, "none"
	case count <= 2:
		return 4, "minor"
	case count <= 4:
		return 2, "moderate"
	default:
		return 0, "severe"
	}
}

var passivePattern = regexp.MustCompile(
	`(?i)\b(?:am|is|are|was|were|be|been|being)\s+(?:\w+ly\s+)?(\w{2,}(?:ed|en)|built|made|done|led|sent|held|run|set|found|known|shown|seen|paid|sold|told|kept|brought|bought|taught|won|met|hired|chosen|awarded)\b`,
)

// words ending in -ed/-en that are not past participles
var passiveFalsePositives = map[string]bool{
	"often": true, "open": true, "even": true, "seven": true, "eleven": true,
	"green": true, "screen": true, "between": true, "dozen": true, "token": true,
	"kitchen": true, "women": true, "children": true, "citizen": true, "garden": true,
	"need": true, "indeed": true, "speed": true, "seed": true, "proceed": true,
	"exceed": true, "succeed": true, "interested": true, "excited": true, "dedicated": true,
	"based": true, "located": true, "talented": true, "skilled": true, "experienced": true,
	"motivated": true, "detailed": true,
}

// DetectPassive counts passive constructions (a form of "to be" followed by a participle)
func (c *Classifier) DetectPassive(text string) PassiveResult {
	result := PassiveResult{Matches: []string{}}
	for _, m := range passivePattern.FindAllStringSubmatch(text, -1) {
		if passiveFalsePositives[strings.ToLower(m[1])] {
			continue
		}
		result.Count++
		result.Matches = append(result.Matches, m[0])
	}
	return result
}
