package scoring

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// neutralGrammarScore is awarded when the grammar collaborator could not run
const neutralGrammarScore = 5.0

var criticalSeverities = map[string]bool{
	"critical": true,
	"error":    true,
	"major":    true,
}

// IsCritical reports whether an issue severity counts as a critical error
func IsCritical(issue types.GrammarIssue) bool {
	return criticalSeverities[strings.ToLower(strings.TrimSpace(issue.Severity))]
}

// GrammarPoints maps issue counts to points out of 10. Critical errors dominate:
// any critical error ignores the minor count.
func GrammarPoints(critical, minor int) float64 {
	if critical > 0 {
		switch {
		case critical == 1:
			return 7
		case critical == 2:
			return 5
		case critical == 3:
			return 4
		case critical <= 5:
			return 3
		default:
			return 0
		}
	}
	switch {
	case minor <= 0:
		return 10
	case minor <= 2:
		return 9
	case minor <= 5:
		return 8
	case minor <= 10:
		return 7
	default:
		return 6
	}
}

// Grammar scores polish from the issue list produced by the grammar collaborator.
// text is the resume text that was checked; checkErr is the collaborator's failure,
// which yields a neutral score instead of propagating.
func (s *Scorer) Grammar(text string, issues []types.GrammarIssue, checkErr error) types.ParameterResult {
	if strings.TrimSpace(text) == "" {
		return types.NewParameterResult(ParamGrammar, 0, MaxGrammar, map[string]any{
			"reason": ReasonNoText,
		})
	}
	if checkErr != nil {
		return types.NewParameterResult(ParamGrammar, neutralGrammarScore, MaxGrammar, map[string]any{
			"reason": ReasonGrammarUnavailable,
			"error":  checkErr.Error(),
		})
	}

	critical, minor := 0, 0
	categories := map[string]int{}
	for _, issue := range issues {
		if IsCritical(issue) {
			critical++
		} else {
			minor++
		}
		if issue.Category != "" {
			categories[strings.ToLower(issue.Category)]++
		}
	}

	return types.NewParameterResult(ParamGrammar, GrammarPoints(critical, minor), MaxGrammar, map[string]any{
		"critical_count": critical,
		"minor_count":    minor,
		"categories":     categories,
	})
}
