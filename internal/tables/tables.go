// Package tables provides the static scoring tables (verb tiers, synonyms, vague phrases,
// role taxonomy and level thresholds). Tables are embedded at compile time, parsed once
// and treated as immutable afterwards.
package tables

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-scorer/internal/types"
)

//go:embed *.json
var tableFiles embed.FS

// GeneralRole is the role profile used when a role key is unknown
const GeneralRole = "general"

// VerbTierDef is one tier of the action verb dictionary
type VerbTierDef struct {
	Tier   int      `json:"tier"`
	Label  string   `json:"label"`
	Points float64  `json:"points"`
	Verbs  []string `json:"verbs"`
}

// Role is an entry of the role taxonomy
type Role struct {
	Key          string         `json:"-"`
	Name         string         `json:"name"`
	Keywords     []string       `json:"keywords"`
	TypicalVerbs []string       `json:"typical_verbs"`
	Weights      map[string]int `json:"weights,omitempty"`
}

// QuantBreakpoint maps a minimum weighted quantification rate to points
type QuantBreakpoint struct {
	MinRate float64 `json:"min_rate"`
	Points  float64 `json:"points"`
}

// Range is an inclusive numeric range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distance returns how far v lies outside the range (0 when inside)
func (r Range) Distance(v float64) float64 {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// LevelThresholds holds the level-aware thresholds shared by all scorers
type LevelThresholds struct {
	Quantification []QuantBreakpoint `json:"quantification"`
	Years          Range             `json:"years"`
	WordCount      Range             `json:"word_count"`
}

// Data is the raw content of every table. It is the input to New.
type Data struct {
	VerbTiers    []VerbTierDef
	Synonyms     map[string][]string
	VaguePhrases []string
	Roles        map[string]Role
	Levels       map[types.ExperienceLevel]LevelThresholds
}

// Tables is an immutable, validated set of scoring tables.
// Accessors return copies so callers cannot mutate shared state.
type Tables struct {
	verbTiers    []VerbTierDef
	synonyms     map[string][]string
	vaguePhrases []string
	roles        map[string]Role
	levels       map[types.ExperienceLevel]LevelThresholds
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded tables, parsed once per process.
// It panics if the embedded data is invalid, which can only happen at build time.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load embedded scoring tables: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Load parses the embedded JSON tables into a fresh Tables value
func Load() (*Tables, error) {
	var verbs struct {
		Tiers []VerbTierDef `json:"tiers"`
	}
	if err := readTable("verbs.json", &verbs); err != nil {
		return nil, err
	}

	var synonyms struct {
		Synonyms map[string][]string `json:"synonyms"`
	}
	if err := readTable("synonyms.json", &synonyms); err != nil {
		return nil, err
	}

	var vague struct {
		Phrases []string `json:"phrases"`
	}
	if err := readTable("vague_phrases.json", &vague); err != nil {
		return nil, err
	}

	var roles struct {
		Roles map[string]Role `json:"roles"`
	}
	if err := readTable("roles.json", &roles); err != nil {
		return nil, err
	}

	var thresholds struct {
		Levels map[types.ExperienceLevel]LevelThresholds `json:"levels"`
	}
	if err := readTable("thresholds.json", &thresholds); err != nil {
		return nil, err
	}

	return New(Data{
		VerbTiers:    verbs.Tiers,
		Synonyms:     synonyms.Synonyms,
		VaguePhrases: vague.Phrases,
		Roles:        roles.Roles,
		Levels:       thresholds.Levels,
	})
}

func readTable(name string, v any) error {
	data, err := tableFiles.ReadFile(name)
	if err != nil {
		return &TableError{Table: name, Message: "failed to read embedded file", Cause: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &TableError{Table: name, Message: "failed to parse JSON", Cause: err}
	}
	return nil
}

// New validates d and builds an immutable Tables from a deep copy of it.
// Tests use New to inject small fixture tables.
func New(d Data) (*Tables, error) {
	t := &Tables{
		synonyms: make(map[string][]string, len(d.Synonyms)),
		roles:    make(map[string]Role, len(d.Roles)),
		levels:   make(map[types.ExperienceLevel]LevelThresholds, len(d.Levels)),
	}

	seenTier := map[int]bool{}
	for _, tier := range d.VerbTiers {
		if tier.Tier < 0 || tier.Tier > 4 {
			return nil, &TableError{Table: "verbs", Message: fmt.Sprintf("tier %d out of range 0-4", tier.Tier)}
		}
		if seenTier[tier.Tier] {
			return nil, &TableError{Table: "verbs", Message: fmt.Sprintf("duplicate tier %d", tier.Tier)}
		}
		seenTier[tier.Tier] = true
		t.verbTiers = append(t.verbTiers, VerbTierDef{
			Tier:   tier.Tier,
			Label:  tier.Label,
			Points: tier.Points,
			Verbs:  normalizeList(tier.Verbs),
		})
	}
	sort.Slice(t.verbTiers, func(i, j int) bool { return t.verbTiers[i].Tier < t.verbTiers[j].Tier })

	for canonical, variants := range d.Synonyms {
		key := Normalize(canonical)
		if key == "" {
			return nil, &TableError{Table: "synonyms", Message: "empty canonical keyword"}
		}
		t.synonyms[key] = normalizeList(variants)
	}

	t.vaguePhrases = normalizeList(d.VaguePhrases)

	for key, role := range d.Roles {
		normalized := NormalizeRoleKey(key)
		role.Key = normalized
		role.Keywords = normalizeList(role.Keywords)
		role.TypicalVerbs = normalizeList(role.TypicalVerbs)
		role.Weights = copyWeights(role.Weights)
		for category, w := range role.Weights {
			if w < 0 {
				return nil, &TableError{Table: "roles", Message: fmt.Sprintf("role %s has negative weight for %s", normalized, category)}
			}
		}
		t.roles[normalized] = role
	}
	if _, ok := t.roles[GeneralRole]; !ok {
		return nil, &TableError{Table: "roles", Message: "missing required role " + GeneralRole}
	}

	for _, level := range types.AllLevels {
		lt, ok := d.Levels[level]
		if !ok {
			return nil, &TableError{Table: "thresholds", Message: "missing thresholds for level " + string(level)}
		}
		breakpoints := append([]QuantBreakpoint(nil), lt.Quantification...)
		sort.Slice(breakpoints, func(i, j int) bool { return breakpoints[i].MinRate > breakpoints[j].MinRate })
		if lt.Years.Min > lt.Years.Max || lt.WordCount.Min > lt.WordCount.Max {
			return nil, &TableError{Table: "thresholds", Message: "inverted range for level " + string(level)}
		}
		t.levels[level] = LevelThresholds{
			Quantification: breakpoints,
			Years:          lt.Years,
			WordCount:      lt.WordCount,
		}
	}

	return t, nil
}

// VerbTiers returns the verb dictionary ordered by tier
func (t *Tables) VerbTiers() []VerbTierDef {
	out := make([]VerbTierDef, len(t.verbTiers))
	for i, tier := range t.verbTiers {
		tier.Verbs = append([]string(nil), tier.Verbs...)
		out[i] = tier
	}
	return out
}

// Synonyms returns canonical keyword → variants
func (t *Tables) Synonyms() map[string][]string {
	out := make(map[string][]string, len(t.synonyms))
	for k, v := range t.synonyms {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// VaguePhrases returns the vague phrase list
func (t *Tables) VaguePhrases() []string {
	return append([]string(nil), t.vaguePhrases...)
}

// Role looks up a role by key
func (t *Tables) Role(key string) (Role, bool) {
	role, ok := t.roles[NormalizeRoleKey(key)]
	if !ok {
		return Role{}, false
	}
	return copyRole(role), true
}

// ResolveRole looks up a role, falling back to the general profile.
// The returned bool reports whether the fallback was used.
func (t *Tables) ResolveRole(key string) (Role, bool) {
	if role, ok := t.Role(key); ok {
		return role, false
	}
	role, _ := t.Role(GeneralRole)
	return role, true
}

// RoleKeys lists every role key in sorted order
func (t *Tables) RoleKeys() []string {
	keys := make([]string, 0, len(t.roles))
	for k := range t.roles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Thresholds returns the thresholds for a level. Levels are validated at construction,
// so every member of types.AllLevels is present.
func (t *Tables) Thresholds(level types.ExperienceLevel) LevelThresholds {
	lt := t.levels[level]
	lt.Quantification = append([]QuantBreakpoint(nil), lt.Quantification...)
	return lt
}

// Normalize lowercases and collapses whitespace in a table term
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeRoleKey maps "Software Engineer" and "software-engineer" to "software_engineer"
func NormalizeRoleKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	return key
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		n := Normalize(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func copyWeights(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyRole(r Role) Role {
	r.Keywords = append([]string(nil), r.Keywords...)
	r.TypicalVerbs = append([]string(nil), r.TypicalVerbs...)
	r.Weights = copyWeights(r.Weights)
	return r
}
