// Package grammar adapts external grammar checkers to the issue records the polish
// scorer consumes.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Severity values emitted by the checkers
const (
	SeverityCritical = "critical"
	SeverityMinor    = "minor"
)

// Checker finds grammar and spelling issues in free text
type Checker interface {
	Check(ctx context.Context, text string) ([]types.GrammarIssue, error)
}

// StaticChecker returns a fixed issue list regardless of text
type StaticChecker struct {
	Issues []types.GrammarIssue
}

// Check returns a copy of the configured issues
func (c StaticChecker) Check(ctx context.Context, _ string) ([]types.GrammarIssue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]types.GrammarIssue{}, c.Issues...), nil
}

// LoadIssuesFile reads a JSON array of issues into a StaticChecker
func LoadIssuesFile(path string) (StaticChecker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StaticChecker{}, fmt.Errorf("failed to read grammar issues file: %w", err)
	}
	var issues []types.GrammarIssue
	if err := json.Unmarshal(data, &issues); err != nil {
		return StaticChecker{}, &Error{Message: "invalid grammar issues file " + path, Cause: err}
	}
	return StaticChecker{Issues: issues}, nil
}
