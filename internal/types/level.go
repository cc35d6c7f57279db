// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ExperienceLevel drives every level-aware threshold table
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediary ExperienceLevel = "intermediary"
	LevelSenior       ExperienceLevel = "senior"
)

// AllLevels lists the levels in ascending order
var AllLevels = []ExperienceLevel{LevelBeginner, LevelIntermediary, LevelSenior}

var levelAliases = map[string]ExperienceLevel{
	"beginner":     LevelBeginner,
	"entry":        LevelBeginner,
	"entry-level":  LevelBeginner,
	"junior":       LevelBeginner,
	"intermediary": LevelIntermediary,
	"intermediate": LevelIntermediary,
	"mid":          LevelIntermediary,
	"mid-level":    LevelIntermediary,
	"senior":       LevelSenior,
	"lead":         LevelSenior,
	"principal":    LevelSenior,
}

// ParseLevel normalizes a level string. Unknown values are a usage error.
func ParseLevel(raw string) (ExperienceLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if level, ok := levelAliases[normalized]; ok {
		return level, nil
	}
	return "", &UsageError{
		Message: "unrecognized experience level " + quote(raw) + " (expected beginner, intermediary or senior)",
		Cause:   ErrUnknownLevel,
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
