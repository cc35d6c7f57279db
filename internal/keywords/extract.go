package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/textutil"
)

// JobKeywords are the keywords extracted from a job description. Required and
// Preferred never share a synonym class; All is their union plus unsectioned terms.
type JobKeywords struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
	All       []string `json:"all"`
	Sectioned bool     `json:"sectioned"`
}

type section int

const (
	sectionOther section = iota
	sectionRequired
	sectionPreferred
)

var (
	requiredHeader  = regexp.MustCompile(`(?i)^\W*(?:required(?: skills| qualifications)?|requirements|must[- ]haves?(?: skills)?|minimum qualifications|basic qualifications|what you(?:'ll)? need|you have|qualifications)\s*([:\-–])?\s*`)
	preferredHeader = regexp.MustCompile(`(?i)^\W*(?:preferred(?: skills| qualifications)?|nice[- ]to[- ]haves?(?: skills)?|bonus(?: points)?|pluses|desired(?: skills)?|good to have|extra credit)\s*([:\-–])?\s*`)

	// short lines ending in a colon start an unrelated section ("Responsibilities:")
	otherHeader = regexp.MustCompile(`^\W*[A-Za-z][A-Za-z /&']{2,40}:\s*$`)

	listSplitter = regexp.MustCompile(`\s*(?:,|;|\||\band\b|\bor\b)\s*`)
	leadFiller   = regexp.MustCompile(`(?i)^(?:experience (?:with|in)|knowledge of|proficiency (?:with|in)|familiarity with|expertise in|strong|solid|working knowledge of)\s+`)
)

// maxListItemWords bounds free-form list items adopted as keywords
const maxListItemWords = 3

// ExtractFromJobDescription finds keywords in a job description and sorts them into
// required and preferred lists using section headers ("Required:", "Preferred:",
// "Nice to have:"). HTML descriptions are converted to text first. A header the
// heuristics cannot classify leaves its lines unsectioned rather than guessing.
func (e *Engine) ExtractFromJobDescription(jd string) JobKeywords {
	text := strings.TrimSpace(jd)
	if textutil.LooksLikeHTML(text) {
		if converted, err := fetch.FragmentToText(text); err == nil {
			text = converted
		}
	}

	var requiredText, preferredText, otherText strings.Builder
	current := sectionOther
	sectioned := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isHeaderLine(line, requiredHeader):
			current, sectioned = sectionRequired, true
			line = requiredHeader.ReplaceAllString(line, "")
		case isHeaderLine(line, preferredHeader):
			current, sectioned = sectionPreferred, true
			line = preferredHeader.ReplaceAllString(line, "")
		case otherHeader.MatchString(line):
			current = sectionOther
			continue
		}

		switch current {
		case sectionRequired:
			requiredText.WriteString(line + "\n")
		case sectionPreferred:
			preferredText.WriteString(line + "\n")
		default:
			otherText.WriteString(line + "\n")
		}
	}

	required := e.sectionKeywords(requiredText.String())
	preferred := e.sectionKeywords(preferredText.String())

	// A term listed under both headers stays required
	filtered := preferred[:0]
	for _, p := range preferred {
		if !e.inClassOf(p, required) {
			filtered = append(filtered, p)
		}
	}
	preferred = filtered

	all := append(append([]string{}, required...), preferred...)
	for _, term := range e.vocabularyIn(otherText.String()) {
		if !e.inClassOf(term, all) {
			all = append(all, term)
		}
	}
	sort.Strings(all)

	return JobKeywords{
		Required:  required,
		Preferred: preferred,
		All:       all,
		Sectioned: sectioned,
	}
}

// isHeaderLine requires a header to be followed by a colon, a dash, or nothing.
// It keeps sentences like "Qualifications matter to us" from opening a section.
// Hyphens inside the header word ("Must-have") do not count as the delimiter.
func isHeaderLine(line string, header *regexp.Regexp) bool {
	loc := header.FindStringSubmatchIndex(line)
	if loc == nil {
		return false
	}
	if strings.TrimSpace(line[loc[1]:]) == "" {
		return true
	}
	return loc[2] >= 0 && loc[3] > loc[2]
}

// sectionKeywords returns known vocabulary terms plus short free-form list items
// that contain no vocabulary term of their own
func (e *Engine) sectionKeywords(text string) []string {
	found := e.vocabularyIn(text)
	for _, line := range strings.Split(text, "\n") {
		for _, item := range listItems(line) {
			if len(e.vocabularyIn(item)) > 0 || e.inClassOf(item, found) {
				continue
			}
			found = append(found, e.Canonical(item))
		}
	}
	sort.Strings(found)
	return found
}

// vocabularyIn returns the canonical name of every vocabulary term present in text.
// Longer terms are matched first and masked so "google cloud platform" does not
// also yield "google cloud".
func (e *Engine) vocabularyIn(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, term := range e.vocabulary {
		if !textutil.ContainsPhraseLower(lower, term) {
			continue
		}
		canonical := e.Canonical(term)
		if !e.inClassOf(canonical, found) {
			found = append(found, canonical)
		}
		lower = textutil.MaskPhraseLower(lower, term)
	}
	sort.Strings(found)
	return found
}

// listItems splits a list line ("Go, Rust, Terraform" or a lone "- Kafka") into short
// items. A line with any item longer than a few words reads as a sentence and yields nothing.
func listItems(line string) []string {
	line = strings.TrimSpace(strings.TrimRight(line, "."))
	if line == "" {
		return nil
	}

	var items []string
	for _, raw := range listSplitter.Split(line, -1) {
		item := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "•-*·()[]\"'"))
		words := strings.Fields(leadFiller.ReplaceAllString(item, ""))
		if len(words) == 0 {
			continue
		}
		if len(words) > maxListItemWords {
			return nil
		}
		item = strings.ToLower(strings.Join(words, " "))
		if !startsWithLetter(item) || stopItems[item] {
			continue
		}
		items = append(items, item)
	}
	return items
}

var stopItems = map[string]bool{
	"etc": true, "etc.": true, "and more": true, "similar": true, "equivalent": true,
	"other": true, "others": true, "the like": true, "a plus": true, "plus": true,
}

func startsWithLetter(s string) bool {
	for _, r := range s {
		return unicode.IsLetter(r)
	}
	return false
}

// inClassOf reports whether term shares a synonym class with any entry of list
func (e *Engine) inClassOf(term string, list []string) bool {
	for _, other := range list {
		if e.SameClass(term, other) {
			return true
		}
	}
	return false
}
