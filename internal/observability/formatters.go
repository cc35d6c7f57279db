// Package observability provides logging, metrics and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of a category score bar
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// bar renders score/max as a fixed-width bar
func bar(score, maxScore float64) string {
	filled := 0
	if maxScore > 0 {
		filled = int(score / maxScore * barWidth)
	}
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintScore outputs the overall score, the category breakdown and recommendations.
func (p *Printer) PrintScore(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %.1f / 100  (%s)\n", result.Score, result.Interpretation))
	sb.WriteString(fmt.Sprintf("Mode:   %s\n", result.Mode))
	sb.WriteString(fmt.Sprintf("Role:   %s\n", result.Role))
	sb.WriteString(fmt.Sprintf("Level:  %s\n", result.Level))
	sb.WriteString("\n")

	for _, c := range result.Breakdown {
		sb.WriteString(fmt.Sprintf("%-20s %s %5.1f/%-3.0f\n", c.Label, bar(c.Score, c.MaxScore), c.Score, c.MaxScore))
	}

	p.printBox("RESUME SCORE", strings.TrimSuffix(sb.String(), "\n"))

	if result.KeywordDetails != nil {
		p.PrintKeywordDetails(result.KeywordDetails)
	}
	p.PrintRecommendations(result.Recommendations)
}

// PrintKeywordDetails outputs the job description keyword match.
func (p *Printer) PrintKeywordDetails(details *types.KeywordDetails) {
	if details == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall match:   %.1f%%\n", details.OverallPercentage))
	sb.WriteString(fmt.Sprintf("Required:        %.1f%% (%d/%d)\n",
		details.RequiredPercent, len(details.MatchedRequired), len(details.Required)))
	if len(details.Preferred) > 0 {
		sb.WriteString(fmt.Sprintf("Preferred:       %.1f%% (%d/%d)\n",
			details.PreferredPercent, len(details.MatchedPreferred), len(details.Preferred)))
	}

	writeList(&sb, "Missing required", details.MissingRequired)
	writeList(&sb, "Missing preferred", details.MissingPreferred)

	p.printBox("KEYWORD MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs recommendations in their final order.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", r.Order, r.Severity, r.Title))
		sb.WriteString(fmt.Sprintf("   %s\n", r.Action))
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobKeywords outputs keywords extracted from a job description.
func (p *Printer) PrintJobKeywords(jk keywords.JobKeywords) {
	var sb strings.Builder
	if !jk.Sectioned {
		sb.WriteString("No required/preferred sections found\n")
	}
	writeAll(&sb, "Required", jk.Required)
	writeAll(&sb, "Preferred", jk.Preferred)
	writeAll(&sb, "All", jk.All)
	p.printBox("JOB DESCRIPTION KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSynonyms outputs the synonym class of a keyword.
func (p *Printer) PrintSynonyms(keyword string, synonyms []string) {
	var sb strings.Builder
	if len(synonyms) == 0 {
		sb.WriteString("(no synonyms)")
	}
	for _, s := range synonyms {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	p.printBox("SYNONYMS: "+keyword, strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

func writeAll(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", title, len(items)))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
}
