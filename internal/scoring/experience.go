package scoring

import (
	"github.com/jonathan/resume-scorer/internal/dates"
	"github.com/jonathan/resume-scorer/internal/types"
)

// CareerRecency scores how recently the candidate was employed (max 3)
func (s *Scorer) CareerRecency(positions []types.Position) types.ParameterResult {
	now := s.now()
	spans := dates.Spans(positions, now)
	recency := dates.Recency(spans, now)

	details := map[string]any{
		"status":           recency.Status,
		"months_since_end": recency.MonthsSinceEnd,
	}
	if recency.MostRecentEnd != "" {
		details["most_recent_end"] = recency.MostRecentEnd
	}
	if len(positions) > 0 && len(spans) == 0 {
		details["reason"] = "no_parseable_dates"
	}
	return types.NewParameterResult(ParamCareerRecency, recency.Points, MaxCareerRecency, details)
}

// JobHopping returns the short-stint penalty in [-3, 0]
func (s *Scorer) JobHopping(positions []types.Position) types.PenaltyResult {
	result := dates.JobHopping(positions, s.now())
	return types.PenaltyResult{
		Name:    ParamJobHopping,
		Penalty: result.Penalty,
		Cap:     JobHoppingCap,
		Details: map[string]any{
			"short_stints_count": len(result.ShortStints),
			"short_stints":       result.ShortStints,
			"excluded_count":     result.ExcludedCount,
		},
	}
}

// YearsPoints maps the distance in years outside the expected range to points
func YearsPoints(distance float64) float64 {
	switch {
	case distance <= 0:
		return 10
	case distance <= 1:
		return 7
	case distance <= 2:
		return 5
	case distance <= 4:
		return 2
	default:
		return 0
	}
}

// YearsAlignment compares total (overlap-merged) tenure with the level's expected range
func (s *Scorer) YearsAlignment(positions []types.Position, level types.ExperienceLevel) types.ParameterResult {
	expected := s.tables.Thresholds(level).Years
	spans := dates.Spans(positions, s.now())
	if len(spans) == 0 {
		return types.NewParameterResult(ParamYearsAlignment, 0, MaxYearsAlignment, map[string]any{
			"reason":         ReasonNoExperience,
			"level":          level,
			"expected_years": expected,
		})
	}

	years := float64(dates.TotalMonths(spans)) / 12
	distance := expected.Distance(years)
	return types.NewParameterResult(ParamYearsAlignment, YearsPoints(distance), MaxYearsAlignment, map[string]any{
		"level":          level,
		"total_years":    types.Round1(years),
		"expected_years": expected,
		"distance_years": types.Round1(distance),
		"positions":      len(spans),
	})
}
