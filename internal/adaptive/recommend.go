package adaptive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// MaxRecommendations caps the list attached to a score
const MaxRecommendations = 7

// Severity and impact labels, most urgent first
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// RecommendationMissingKeywords aggregates every missing job description keyword
const RecommendationMissingKeywords = "add_missing_keywords"

// maxKeywordsListed bounds the keywords named in the missing-keyword action
const maxKeywordsListed = 8

// maxRoleVerbsListed bounds the role verbs suggested in the action verb advice
const maxRoleVerbsListed = 4

var rank = map[string]int{SeverityHigh: 0, SeverityMedium: 1, SeverityLow: 2}

type advice struct {
	id     string
	title  string
	action string
}

var catalog = map[string]advice{
	scoring.ParamActionVerbs: {
		id:     "strengthen_action_verbs",
		title:  "Lead bullets with strong action verbs",
		action: "Start each bullet with a specific verb such as led, built or reduced instead of \"responsible for\" or \"worked on\".",
	},
	scoring.ParamQuantification: {
		id:     "quantify_achievements",
		title:  "Quantify your impact",
		action: "Add numbers to more bullets: percentages, revenue, users, team size or time saved.",
	},
	scoring.ParamVaguePhrases: {
		id:     "replace_vague_phrases",
		title:  "Replace vague phrases",
		action: "Swap generic claims like \"team player\" or \"various projects\" for concrete outcomes.",
	},
	scoring.ParamPassiveVoice: {
		id:     "use_active_voice",
		title:  "Use active voice",
		action: "Rewrite bullets such as \"was implemented by the team\" so you are the subject of the sentence.",
	},
	scoring.ParamGrammar: {
		id:     "fix_grammar",
		title:  "Fix grammar and spelling",
		action: "Proofread the resume and correct the reported grammar and spelling issues.",
	},
	scoring.ParamCareerRecency: {
		id:     "address_employment_gap",
		title:  "Address your most recent gap",
		action: "Add recent work, contracts, projects or education so the timeline reaches the present.",
	},
	scoring.ParamYearsAlignment: {
		id:     "align_experience_level",
		title:  "Align experience with the target level",
		action: "Check that position dates are complete and consider targeting roles that match your years of experience.",
	},
	scoring.ParamATSFormatting: {
		id:     "simplify_formatting",
		title:  "Simplify formatting for ATS parsers",
		action: "Remove tables, text boxes and photos, keep contact details out of headers and use a standard font.",
	},
	scoring.ParamSectionBalance: {
		id:     "balance_sections",
		title:  "Balance your resume sections",
		action: "Include experience, education and skills sections, keep 2 to 6 bullets per position and adjust overall length.",
	},
	scoring.ParamParseability: {
		id:     "improve_parseability",
		title:  "Make the resume machine-readable",
		action: "Export a text-based PDF or DOCX under 2 MB with clear section headings and plain bullet characters.",
	},
	scoring.ParamContact: {
		id:     "complete_contact_info",
		title:  "Complete your contact details",
		action: "Add a professional email, phone number, location and LinkedIn URL.",
	},
	scoring.ParamRoleKeywords: {
		id:     "add_role_keywords",
		title:  "Add skills expected for the role",
		action: "List the tools and skills you use that are typical for this role in your skills section and bullets.",
	},
	scoring.ParamJobHopping: {
		id:     "explain_short_tenures",
		title:  "Explain short tenures",
		action: "Group short stints, label contract work as contract and highlight what you delivered in each role.",
	},
}

// skipReasons mark components whose low score says nothing about the resume
var skipReasons = map[string]bool{
	scoring.ReasonGrammarUnavailable: true,
	scoring.ReasonNoMetadata:         true,
	scoring.ReasonNoKeywords:         true,
}

// severityFor maps the earned share of a component to a severity; ok is false when
// the component is strong enough to need no advice
func severityFor(ratio float64) (string, bool) {
	switch {
	case ratio < 0.4:
		return SeverityHigh, true
	case ratio < 0.7:
		return SeverityMedium, true
	case ratio < 0.85:
		return SeverityLow, true
	default:
		return "", false
	}
}

// impactFor labels the overall points a fix could recover
func impactFor(points float64) string {
	switch {
	case points >= 5:
		return SeverityHigh
	case points >= 2:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

type candidate struct {
	rec    types.Recommendation
	points float64
}

// Recommend derives deterministic recommendations from a breakdown: one per weak
// component, one per applied penalty and one aggregate for missing job keywords.
// The list is deduplicated by ID, sorted by severity, impact, category and ID,
// capped and numbered.
func Recommend(breakdown types.ScoreBreakdown, details *types.KeywordDetails) []types.Recommendation {
	var candidates []candidate
	roleVerbs := missingRoleVerbs(breakdown)

	for _, cat := range breakdown {
		possible := 0.0
		for _, c := range cat.Components {
			possible += c.MaxScore
		}
		if possible <= 0 {
			continue
		}
		scale := cat.MaxScore / possible

		for _, c := range cat.Components {
			if c.MaxScore <= 0 {
				continue
			}
			if reason, _ := c.Details["reason"].(string); skipReasons[reason] {
				continue
			}
			severity, weak := severityFor(c.Score / c.MaxScore)
			if !weak {
				continue
			}
			points := (c.MaxScore - c.Score) * scale

			if c.Name == scoring.ParamJDKeywords {
				if rec, ok := missingKeywords(cat.Name, severity, points, details); ok {
					candidates = append(candidates, candidate{rec: rec, points: points})
				}
				continue
			}

			adv, ok := catalog[c.Name]
			if !ok {
				continue
			}
			action := adv.action
			if c.Name == scoring.ParamActionVerbs && len(roleVerbs) > 0 {
				action += " Verbs typical for this role you have not used yet: " + strings.Join(roleVerbs, ", ") + "."
			}
			candidates = append(candidates, candidate{
				rec: types.Recommendation{
					ID:       adv.id,
					Category: cat.Name,
					Severity: severity,
					Title:    adv.title,
					Action:   action,
					Impact:   impactFor(points),
				},
				points: points,
			})
		}

		for _, p := range cat.Penalties {
			if p.Penalty >= 0 || p.Cap <= 0 {
				continue
			}
			adv, ok := catalog[p.Name]
			if !ok {
				continue
			}
			severity, _ := severityFor(1 + p.Penalty/p.Cap)
			if severity == "" {
				severity = SeverityLow
			}
			points := -p.Penalty * scale
			candidates = append(candidates, candidate{
				rec: types.Recommendation{
					ID:       adv.id,
					Category: cat.Name,
					Severity: severity,
					Title:    adv.title,
					Action:   adv.action,
					Impact:   impactFor(points),
				},
				points: points,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].rec, candidates[j].rec
		if rank[a.Severity] != rank[b.Severity] {
			return rank[a.Severity] < rank[b.Severity]
		}
		if rank[a.Impact] != rank[b.Impact] {
			return rank[a.Impact] < rank[b.Impact]
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.ID < b.ID
	})

	recs := make([]types.Recommendation, 0, MaxRecommendations)
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c.rec.ID] {
			continue
		}
		seen[c.rec.ID] = true
		c.rec.Order = len(recs) + 1
		recs = append(recs, c.rec)
		if len(recs) == MaxRecommendations {
			break
		}
	}
	return recs
}

// missingRoleVerbs returns the role's typical verbs that open no bullet, as reported
// by the role keyword fit component
func missingRoleVerbs(breakdown types.ScoreBreakdown) []string {
	for _, cat := range breakdown {
		for _, c := range cat.Components {
			if c.Name != scoring.ParamRoleKeywords {
				continue
			}
			verbs, _ := c.Details["role_verbs_missing"].([]string)
			if len(verbs) > maxRoleVerbsListed {
				verbs = verbs[:maxRoleVerbsListed]
			}
			return verbs
		}
	}
	return nil
}

func missingKeywords(category, severity string, points float64, details *types.KeywordDetails) (types.Recommendation, bool) {
	if details == nil {
		return types.Recommendation{}, false
	}
	missing := append(append([]string{}, details.MissingRequired...), details.MissingPreferred...)
	if len(missing) == 0 {
		return types.Recommendation{}, false
	}

	listed := missing
	suffix := ""
	if len(listed) > maxKeywordsListed {
		suffix = fmt.Sprintf(" and %d more", len(listed)-maxKeywordsListed)
		listed = listed[:maxKeywordsListed]
	}

	return types.Recommendation{
		ID:       RecommendationMissingKeywords,
		Category: category,
		Severity: severity,
		Title:    "Add missing job description keywords",
		Action:   "Where you have the experience, mention: " + strings.Join(listed, ", ") + suffix + ".",
		Impact:   impactFor(points),
	}, true
}
