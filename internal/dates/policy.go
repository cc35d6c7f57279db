package dates

import (
	"regexp"
	"time"

	"github.com/jonathan/resume-scorer/internal/types"
)

// RecencyStatus labels how recently the candidate was employed
type RecencyStatus string

const (
	StatusCurrentlyEmployed RecencyStatus = "currently_employed"
	StatusRecentlyLeft      RecencyStatus = "recently_left"
	StatusGapUnderYear      RecencyStatus = "gap_under_year"
	StatusExtendedGap       RecencyStatus = "extended_gap"
	StatusNoExperience      RecencyStatus = "no_experience"
)

// Recency thresholds in months and the points they earn (max 3)
const (
	RecencyMaxPoints     = 3.0
	recentlyLeftMonths   = 3
	gapUnderYearMonths   = 12
	recentlyLeftPoints   = 2.0
	gapUnderYearPoints   = 1.0
	ShortStintMonths     = 12
	ShortStintPenalty    = -1.0
	JobHoppingPenaltyCap = -3.0
)

// RecencyResult is the outcome of the recency policy
type RecencyResult struct {
	Points         float64       `json:"points"`
	Status         RecencyStatus `json:"status"`
	MonthsSinceEnd int           `json:"months_since_end"`
	MostRecentEnd  string        `json:"most_recent_end,omitempty"`
}

// Recency scores how recently the latest position ended
func Recency(spans []Span, now time.Time) RecencyResult {
	if len(spans) == 0 {
		return RecencyResult{Points: 0, Status: StatusNoExperience}
	}

	latest := spans[0]
	for _, s := range spans {
		if s.Current {
			return RecencyResult{Points: RecencyMaxPoints, Status: StatusCurrentlyEmployed, MostRecentEnd: s.End.String()}
		}
		if s.End.Index() > latest.End.Index() {
			latest = s
		}
	}

	months := MonthsSince(latest.End, now)
	result := RecencyResult{MonthsSinceEnd: months, MostRecentEnd: latest.End.String()}
	switch {
	case months <= recentlyLeftMonths:
		result.Points, result.Status = recentlyLeftPoints, StatusRecentlyLeft
	case months <= gapUnderYearMonths:
		result.Points, result.Status = gapUnderYearPoints, StatusGapUnderYear
	default:
		result.Points, result.Status = 0, StatusExtendedGap
	}
	return result
}

var contractPattern = regexp.MustCompile(`(?i)\b(?:contract|contractor|temporary|temp|freelance|freelancer)\b`)

// IsContractRole reports whether the position is tagged as contract, temporary or freelance
func IsContractRole(p types.Position) bool {
	return contractPattern.MatchString(p.Title) ||
		contractPattern.MatchString(p.Company) ||
		contractPattern.MatchString(p.Description)
}

// Stint is one position considered by the job-hopping policy
type Stint struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Months  int    `json:"months"`
}

// JobHoppingResult is the outcome of the job-hopping policy
type JobHoppingResult struct {
	Penalty       float64 `json:"penalty"`
	ShortStints   []Stint `json:"short_stints"`
	ExcludedCount int     `json:"excluded_count"`
}

// JobHopping flags completed positions shorter than 12 months. Contract roles and
// ongoing positions are excluded. Each flagged stint costs one point up to the cap.
func JobHopping(positions []types.Position, now time.Time) JobHoppingResult {
	result := JobHoppingResult{ShortStints: []Stint{}}
	for _, p := range positions {
		span, ok := PositionSpan(p, now)
		if !ok || span.Current {
			continue
		}
		months := span.Months()
		if months >= ShortStintMonths {
			continue
		}
		if IsContractRole(p) {
			result.ExcludedCount++
			continue
		}
		result.ShortStints = append(result.ShortStints, Stint{Title: p.Title, Company: p.Company, Months: months})
	}

	if n := len(result.ShortStints); n > 0 {
		result.Penalty = max(JobHoppingPenaltyCap, ShortStintPenalty*float64(n))
	}
	return result
}
