// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ScoringMode selects the aggregation rubric
type ScoringMode string

const (
	ModeATSSimulation ScoringMode = "ats_simulation"
	ModeQualityCoach  ScoringMode = "quality_coach"
)

// NormalizeScoringMode resolves a requested mode string against the job description.
//
// Explicit modes (and the legacy aliases "ats" and "quality") win. "auto" or an empty
// mode falls back to job description presence. The job description is trimmed first,
// so a whitespace-only description counts as absent. Requesting ATS simulation without
// a job description, or an unknown mode string, is a usage error.
func NormalizeScoringMode(raw string, jobDescription string) (ScoringMode, error) {
	hasJD := strings.TrimSpace(jobDescription) != ""

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		if hasJD {
			return ModeATSSimulation, nil
		}
		return ModeQualityCoach, nil
	case "ats", "ats_simulation":
		if !hasJD {
			return "", &UsageError{
				Message: "ats_simulation mode requires a non-empty job description",
				Cause:   ErrMissingJobDescription,
			}
		}
		return ModeATSSimulation, nil
	case "quality", "quality_coach":
		return ModeQualityCoach, nil
	default:
		return "", &UsageError{
			Message: "unrecognized scoring mode " + quote(raw) + " (expected auto, ats_simulation or quality_coach)",
			Cause:   ErrUnknownMode,
		}
	}
}
