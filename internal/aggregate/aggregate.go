// Package aggregate combines per-parameter results into the two 100-point scoring
// modes: ATS Simulation and Quality Coach.
package aggregate

import (
	"math"
	"sort"

	"github.com/jonathan/resume-scorer/internal/types"
)

// TotalPoints is what every mode breakdown sums to
const TotalPoints = 100

// Category is one breakdown entry before scoring
type Category struct {
	Name       string
	Label      string
	Max        int
	Components []types.ParameterResult
	Penalties  []types.PenaltyResult
}

// Compose scores each category: the sum of component scores plus penalties (which are
// negative), floored at zero, as a share of the summed component maxima, scaled to the
// category max and rounded to one decimal.
func Compose(categories []Category) types.ScoreBreakdown {
	breakdown := make(types.ScoreBreakdown, 0, len(categories))
	for _, c := range categories {
		breakdown = append(breakdown, types.CategoryScore{
			Name:       c.Name,
			Label:      c.Label,
			Score:      categoryScore(c),
			MaxScore:   float64(c.Max),
			Components: c.Components,
			Penalties:  c.Penalties,
		})
	}
	return breakdown
}

func categoryScore(c Category) float64 {
	earned, possible := 0.0, 0.0
	for _, r := range c.Components {
		earned += r.Score
		possible += r.MaxScore
	}
	for _, p := range c.Penalties {
		earned += p.Penalty
	}
	if possible <= 0 || c.Max <= 0 {
		return 0
	}
	earned = math.Max(0, earned)
	return types.Clamp(types.Round1(earned/possible*float64(c.Max)), 0, float64(c.Max))
}

// Total sums category scores, rounded to one decimal and bounded to [0, 100]
func Total(b types.ScoreBreakdown) float64 {
	return types.Clamp(types.Round1(b.Total()), 0, TotalPoints)
}

// Interpretation bands, highest first
var bands = []struct {
	min   float64
	label string
}{
	{90, "Excellent"},
	{75, "Very good"},
	{60, "Good"},
	{40, "Needs improvement"},
}

// Interpret maps an overall score to its qualitative label
func Interpret(score float64) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return "Needs significant improvement"
}

// NormalizeWeights overlays overrides on defaults and rescales them to integers that
// sum to exactly 100 using largest-remainder rounding. Ties go to the earlier category
// in order. Unknown override keys are ignored; an all-zero result falls back to defaults.
func NormalizeWeights(defaults, overrides map[string]int, order []string) map[string]int {
	merged := make(map[string]int, len(order))
	total := 0
	for _, name := range order {
		w := defaults[name]
		if o, ok := overrides[name]; ok && o >= 0 {
			w = o
		}
		merged[name] = w
		total += w
	}
	if total <= 0 {
		if overrides == nil {
			return merged
		}
		return NormalizeWeights(defaults, nil, order)
	}
	if total == TotalPoints {
		return merged
	}

	type share struct {
		name      string
		index     int
		remainder float64
	}
	out := make(map[string]int, len(order))
	shares := make([]share, 0, len(order))
	assigned := 0
	for i, name := range order {
		exact := float64(merged[name]) * TotalPoints / float64(total)
		floor := math.Floor(exact)
		out[name] = int(floor)
		assigned += int(floor)
		shares = append(shares, share{name: name, index: i, remainder: exact - floor})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].index < shares[j].index
	})
	for i := 0; assigned < TotalPoints; i++ {
		out[shares[i%len(shares)].name]++
		assigned++
	}
	return out
}
