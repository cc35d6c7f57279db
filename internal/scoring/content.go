package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

var coverageSteps = []step{{95, 7}, {85, 6}, {70, 4}, {50, 2}}

var averageTierSteps = []step{{3.5, 8}, {2.5, 6}, {1.5, 4}, {0.5, 2}}

// ActionVerbs scores leading verb strength: coverage of classified bullets (7) plus
// average tier points (8).
func (s *Scorer) ActionVerbs(bullets []string) types.ParameterResult {
	if len(bullets) == 0 {
		return types.NewParameterResult(ParamActionVerbs, 0, MaxActionVerbs, map[string]any{
			"reason": ReasonNoBullets,
		})
	}

	distribution := map[int]int{}
	classified := 0
	totalPoints := 0.0
	for _, b := range bullets {
		tier := s.classifier.ClassifyBullet(b)
		distribution[tier.Tier]++
		totalPoints += tier.Points
		if tier.Tier >= 1 {
			classified++
		}
	}

	coverage := float64(classified) / float64(len(bullets)) * 100
	average := totalPoints / float64(len(bullets))
	coveragePoints := CoveragePoints(coverage)
	tierPoints := stepScore(average, averageTierSteps)

	return types.NewParameterResult(ParamActionVerbs, coveragePoints+tierPoints, MaxActionVerbs, map[string]any{
		"bullet_count":      len(bullets),
		"classified_count":  classified,
		"coverage_percent":  types.Round1(coverage),
		"coverage_points":   coveragePoints,
		"average_tier":      types.Round1(average),
		"tier_points":       tierPoints,
		"tier_distribution": distribution,
	})
}

// CoveragePoints maps a verb coverage percentage to points out of 7
func CoveragePoints(coveragePercent float64) float64 {
	return stepScore(coveragePercent, coverageSteps)
}

// VaguePhrases scores achievement depth from vague phrase occurrences across all bullets
func (s *Scorer) VaguePhrases(bullets []string) types.ParameterResult {
	if len(bullets) == 0 {
		return types.NewParameterResult(ParamVaguePhrases, 0, MaxVaguePhrases, map[string]any{
			"reason": ReasonNoBullets,
		})
	}

	found := s.classifier.DetectVague(strings.Join(bullets, "\n"))
	return types.NewParameterResult(ParamVaguePhrases, found.Score, MaxVaguePhrases, map[string]any{
		"count":          found.Count,
		"found_phrases":  found.FoundPhrases,
		"occurrences":    found.Occurrences,
		"breakdown_tier": found.BreakdownTier,
	})
}

// PassivePoints maps a passive construction count to points out of 2
func PassivePoints(count int) float64 {
	switch {
	case count <= 0:
		return 2.0
	case count == 1:
		return 1.5
	case count == 2:
		return 1.0
	default:
		return 0
	}
}

// PassiveVoice penalizes passive constructions in half-point steps, floored at zero
func (s *Scorer) PassiveVoice(bullets []string) types.ParameterResult {
	if len(bullets) == 0 {
		return types.NewParameterResult(ParamPassiveVoice, 0, MaxPassiveVoice, map[string]any{
			"reason": ReasonNoBullets,
		})
	}

	count := 0
	var matches []string
	for _, b := range bullets {
		found := s.classifier.DetectPassive(b)
		count += found.Count
		matches = append(matches, found.Matches...)
	}

	return types.NewParameterResult(ParamPassiveVoice, PassivePoints(count), MaxPassiveVoice, map[string]any{
		"passive_count": count,
		"matches":       matches,
	})
}

// Magnitude of the metric evidence in a bullet
type Magnitude string

const (
	MagnitudeNone   Magnitude = "none"
	MagnitudeLow    Magnitude = "low"
	MagnitudeMedium Magnitude = "medium"
	MagnitudeHigh   Magnitude = "high"
)

var magnitudeWeights = map[Magnitude]float64{
	MagnitudeHigh:   1.0,
	MagnitudeMedium: 0.75,
	MagnitudeLow:    0.5,
	MagnitudeNone:   0,
}

var (
	percentPattern    = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:%|percent\b|pct\b)`)
	currencyPattern   = regexp.MustCompile(`(?i)(?:[$€£¥]\s?\d)|(?:\d+(?:\.\d+)?\s?(?:usd|eur|gbp|dollars)\b)`)
	multiplierPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?x\b|\b(?:doubled|tripled|quadrupled)\b`)
	peoplePattern     = regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s+(?:\w+\s+)?(?:people|engineers|developers|employees|staff|members|users|customers|clients|students|patients|reports|stakeholders|accounts|partners|volunteers)\b|\bteam of \d+`)
	durationPattern   = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:hours?|days?|weeks?|months?|years?|hrs?|mins?|minutes?)\b`)
	numberPattern     = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
)

// ClassifyMagnitude grades the strongest metric evidence in a bullet
func ClassifyMagnitude(bullet string) Magnitude {
	switch {
	case percentPattern.MatchString(bullet), currencyPattern.MatchString(bullet), multiplierPattern.MatchString(bullet):
		return MagnitudeHigh
	case peoplePattern.MatchString(bullet):
		return MagnitudeMedium
	}

	stripped := durationPattern.ReplaceAllString(bullet, " ")
	hasDuration := stripped != bullet
	for _, raw := range numberPattern.FindAllString(stripped, -1) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil || isYear(raw, n) {
			continue
		}
		if n >= 10 {
			return MagnitudeMedium
		}
		return MagnitudeLow
	}
	if hasDuration {
		return MagnitudeLow
	}
	return MagnitudeNone
}

func isYear(raw string, n float64) bool {
	return len(raw) == 4 && n >= 1950 && n <= 2099
}

// Quantification scores the level-specific weighted rate of bullets carrying metrics
func (s *Scorer) Quantification(bullets []string, level types.ExperienceLevel) types.ParameterResult {
	if len(bullets) == 0 {
		return types.NewParameterResult(ParamQuantification, 0, MaxQuantification, map[string]any{
			"reason": ReasonNoBullets,
			"level":  level,
		})
	}

	counts := map[Magnitude]int{}
	weighted := 0.0
	quantified := 0
	for _, b := range bullets {
		m := ClassifyMagnitude(b)
		counts[m]++
		weighted += magnitudeWeights[m]
		if m != MagnitudeNone {
			quantified++
		}
	}
	rate := weighted / float64(len(bullets))

	points := 0.0
	for _, bp := range s.tables.Thresholds(level).Quantification {
		if rate >= bp.MinRate {
			points = bp.Points
			break
		}
	}

	return types.NewParameterResult(ParamQuantification, points, MaxQuantification, map[string]any{
		"level":            level,
		"bullet_count":     len(bullets),
		"quantified_count": quantified,
		"weighted_rate":    types.Round1(rate*100) / 100,
		"high":             counts[MagnitudeHigh],
		"medium":           counts[MagnitudeMedium],
		"low":              counts[MagnitudeLow],
	})
}
