package scoring

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/tables"
	"github.com/jonathan/resume-scorer/internal/textutil"
	"github.com/jonathan/resume-scorer/internal/types"
)

var roleFitSteps = []step{{80, 10}, {60, 8}, {40, 6}, {20, 3}}

// RoleFitPoints maps role keyword coverage to points out of 10
func RoleFitPoints(coveragePercent float64) float64 {
	if p := stepScore(coveragePercent, roleFitSteps); p > 0 {
		return p
	}
	if coveragePercent > 0 {
		return 1
	}
	return 0
}

// keywordText is the resume text searched for keywords: skills, titles and descriptions
func keywordText(resume *types.ResumeData) string {
	if resume == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(resume.Skills, ", "))
	sb.WriteString("\n")
	for _, c := range resume.Certifications {
		sb.WriteString(c.Name + "\n")
	}
	sb.WriteString(resume.FullText())
	return sb.String()
}

// RoleKeywordFit measures presence of the role's typical keywords, independent of
// any job description. fallback records that the role key was unknown.
func (s *Scorer) RoleKeywordFit(resume *types.ResumeData, role tables.Role, fallback bool) types.ParameterResult {
	if len(role.Keywords) == 0 {
		return types.NewParameterResult(ParamRoleKeywords, 0, MaxRoleKeywords, map[string]any{
			"reason":        ReasonNoKeywords,
			"role":          role.Key,
			"role_fallback": fallback,
		})
	}

	match := s.keywords.MatchKeywords(keywordText(resume), role.Keywords)
	var bullets []string
	if resume != nil {
		bullets = resume.Bullets()
	}
	verbsUsed, verbsMissing := RoleVerbUsage(bullets, role.TypicalVerbs)
	return types.NewParameterResult(ParamRoleKeywords, RoleFitPoints(match.Percentage), MaxRoleKeywords, map[string]any{
		"role":               role.Key,
		"role_fallback":      fallback,
		"matched":            match.Matched,
		"missing":            match.Missing,
		"coverage_percent":   match.Percentage,
		"role_verbs_used":    verbsUsed,
		"role_verbs_missing": verbsMissing,
	})
}

// RoleVerbUsage splits the role's typical verbs into those that open at least one
// bullet and those that open none. Both lists keep the table order.
func RoleVerbUsage(bullets, verbs []string) (used, missing []string) {
	openers := make(map[string]bool, len(bullets))
	for _, b := range bullets {
		if tokens := textutil.Tokens(b); len(tokens) > 0 {
			openers[tokens[0]] = true
		}
	}

	used, missing = []string{}, []string{}
	for _, v := range verbs {
		if openers[v] {
			used = append(used, v)
		} else {
			missing = append(missing, v)
		}
	}
	return used, missing
}

// Required keywords outweigh preferred ones in the job description match
const (
	requiredShare  = 0.7
	preferredShare = 0.3
)

// JDKeywordMatch scores the resume against job description keywords. When one list is
// empty the other carries the full weight; an unsectioned description is all required.
func (s *Scorer) JDKeywordMatch(resume *types.ResumeData, jd keywords.JobKeywords) (types.ParameterResult, *types.KeywordDetails) {
	required, preferred := jd.Required, jd.Preferred
	if len(required) == 0 && len(preferred) == 0 {
		required = jd.All
	}

	text := keywordText(resume)
	reqMatch := s.keywords.MatchKeywords(text, required)
	prefMatch := s.keywords.MatchKeywords(text, preferred)

	var overall float64
	switch {
	case len(required) > 0 && len(preferred) > 0:
		overall = reqMatch.Percentage*requiredShare + prefMatch.Percentage*preferredShare
	case len(required) > 0:
		overall = reqMatch.Percentage
	case len(preferred) > 0:
		overall = prefMatch.Percentage
	}
	overall = types.Round1(overall)

	details := &types.KeywordDetails{
		Required:          nonNil(required),
		Preferred:         nonNil(preferred),
		MatchedRequired:   reqMatch.Matched,
		MissingRequired:   reqMatch.Missing,
		MatchedPreferred:  prefMatch.Matched,
		MissingPreferred:  prefMatch.Missing,
		RequiredPercent:   reqMatch.Percentage,
		PreferredPercent:  prefMatch.Percentage,
		OverallPercentage: overall,
	}

	diag := map[string]any{
		"required_percent":  reqMatch.Percentage,
		"preferred_percent": prefMatch.Percentage,
		"overall_percent":   overall,
		"required_count":    len(required),
		"preferred_count":   len(preferred),
	}
	if len(required) == 0 && len(preferred) == 0 {
		diag["reason"] = ReasonNoKeywords
	}
	return types.NewParameterResult(ParamJDKeywords, overall/100*MaxJDKeywords, MaxJDKeywords, diag), details
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
