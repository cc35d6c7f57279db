// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "math"

// ParameterResult is the uniform contract every per-parameter scorer returns.
// Score is always clamped to [0, MaxScore].
type ParameterResult struct {
	Name     string         `json:"name"`
	Score    float64        `json:"score"`
	MaxScore float64        `json:"max_score"`
	Details  map[string]any `json:"details,omitempty"`
}

// NewParameterResult builds a result with the score clamped into range
func NewParameterResult(name string, score, maxScore float64, details map[string]any) ParameterResult {
	if details == nil {
		details = map[string]any{}
	}
	return ParameterResult{
		Name:     name,
		Score:    Clamp(score, 0, maxScore),
		MaxScore: maxScore,
		Details:  details,
	}
}

// PenaltyResult is a deduction in [-Cap, 0] applied on top of a category
type PenaltyResult struct {
	Name    string         `json:"name"`
	Penalty float64        `json:"penalty"`
	Cap     float64        `json:"cap"`
	Details map[string]any `json:"details,omitempty"`
}

// CategoryScore is one entry of a mode breakdown
type CategoryScore struct {
	Name       string            `json:"name"`
	Label      string            `json:"label"`
	Score      float64           `json:"score"`
	MaxScore   float64           `json:"max_score"`
	Components []ParameterResult `json:"components"`
	Penalties  []PenaltyResult   `json:"penalties,omitempty"`
}

// ScoreBreakdown is the ordered category list of a mode
type ScoreBreakdown []CategoryScore

// Get returns the category with the given name
func (b ScoreBreakdown) Get(name string) (CategoryScore, bool) {
	for _, c := range b {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// MaxTotal sums the category maxima
func (b ScoreBreakdown) MaxTotal() float64 {
	total := 0.0
	for _, c := range b {
		total += c.MaxScore
	}
	return total
}

// Total sums the category scores
func (b ScoreBreakdown) Total() float64 {
	total := 0.0
	for _, c := range b {
		total += c.Score
	}
	return total
}

// GrammarIssue is one record from the external grammar-checking collaborator
type GrammarIssue struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// KeywordDetails reports the job description keyword match for ATS simulation
type KeywordDetails struct {
	Required          []string `json:"required"`
	Preferred         []string `json:"preferred"`
	MatchedRequired   []string `json:"matched_required"`
	MissingRequired   []string `json:"missing_required"`
	MatchedPreferred  []string `json:"matched_preferred"`
	MissingPreferred  []string `json:"missing_preferred"`
	RequiredPercent   float64  `json:"required_percent"`
	PreferredPercent  float64  `json:"preferred_percent"`
	OverallPercentage float64  `json:"overall_percentage"`
}

// Recommendation is a deterministic, actionable suggestion
type Recommendation struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// ScoreResult is the top-level output of the adaptive scorer
type ScoreResult struct {
	Score           float64          `json:"score"`
	Mode            ScoringMode      `json:"mode"`
	Role            string           `json:"role"`
	Level           ExperienceLevel  `json:"level"`
	Breakdown       ScoreBreakdown   `json:"breakdown"`
	Interpretation  string           `json:"interpretation"`
	Recommendations []Recommendation `json:"recommendations"`
	KeywordDetails  *KeywordDetails  `json:"keyword_details,omitempty"`
}

// Clamp bounds v to [lo, hi]; NaN collapses to lo
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
