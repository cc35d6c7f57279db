// Package dates parses resume date ranges into calendar months and computes tenure,
// recency and short-stint policies. All arithmetic is on (year, month) pairs, never days.
package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Point is a calendar month. Current is set when the source said "Present" or similar.
type Point struct {
	Year    int  `json:"year"`
	Month   int  `json:"month"`
	Current bool `json:"current,omitempty"`
}

// Index returns the number of months since year 0
func (p Point) Index() int {
	return p.Year*12 + (p.Month - 1)
}

// String renders the point as YYYY-MM
func (p Point) String() string {
	if p.Current {
		return "present"
	}
	return strconv.Itoa(p.Year) + "-" + pad2(p.Month)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

var currentWords = map[string]bool{
	"present": true, "current": true, "currently": true, "now": true,
	"today": true, "ongoing": true, "to date": true, "till date": true,
}

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var (
	yearOnlyPattern   = regexp.MustCompile(`^(\d{4})$`)
	yearMonthPattern  = regexp.MustCompile(`^(\d{4})\s*[-/.]\s*(\d{1,2})$`)
	monthYearPattern  = regexp.MustCompile(`^(\d{1,2})\s*[-/.]\s*(\d{4})$`)
	namedMonthPattern = regexp.MustCompile(`^([a-z]+)\.?,?\s*(\d{4})$`)
	shortYearPattern  = regexp.MustCompile(`^([a-z]+)\.?\s*'(\d{2})$`)

	currentSuffix  = regexp.MustCompile(`(?i)\b(?:to|till)\s+date\s*$`)
	rangeSeparator = regexp.MustCompile(`(?i)\s*(?:–|—|‒|−|\s-\s|\bto\b|\buntil\b|\bthrough\b|\bthru\b)\s*`)
)

const (
	minYear = 1900
	maxYear = 2100
)

// IsCurrent reports whether s is an open-ended marker such as "Present"
func IsCurrent(s string) bool {
	return currentWords[normalize(s)]
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// ParseDate parses a single date. "Present"/"Current" (case-insensitive) map to now.
// Unparseable input returns false, never an error.
func ParseDate(s string, now time.Time) (Point, bool) {
	n := normalize(s)
	if n == "" {
		return Point{}, false
	}
	if currentWords[n] {
		return Point{Year: now.Year(), Month: int(now.Month()), Current: true}, true
	}
	return parseFixed(n)
}

func parseFixed(n string) (Point, bool) {
	if m := yearOnlyPattern.FindStringSubmatch(n); m != nil {
		return makePoint(atoi(m[1]), 1)
	}
	if m := yearMonthPattern.FindStringSubmatch(n); m != nil {
		return makePoint(atoi(m[1]), atoi(m[2]))
	}
	if m := monthYearPattern.FindStringSubmatch(n); m != nil {
		return makePoint(atoi(m[2]), atoi(m[1]))
	}
	if m := namedMonthPattern.FindStringSubmatch(n); m != nil {
		month, ok := monthNames[m[1]]
		if !ok {
			return Point{}, false
		}
		return makePoint(atoi(m[2]), month)
	}
	if m := shortYearPattern.FindStringSubmatch(n); m != nil {
		month, ok := monthNames[m[1]]
		if !ok {
			return Point{}, false
		}
		return makePoint(2000+atoi(m[2]), month)
	}
	return Point{}, false
}

func makePoint(year, month int) (Point, bool) {
	if year < minYear || year > maxYear || month < 1 || month > 12 {
		return Point{}, false
	}
	return Point{Year: year, Month: month}, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// ExtractDatesFromRange splits a range such as "Jan 2020 - Present" into its two sides.
// A lone date returns it as start with an empty end.
func ExtractDatesFromRange(text string) (start, end string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	// "to date" would otherwise be cut on its own "to"
	if loc := currentSuffix.FindStringIndex(text); loc != nil {
		left := strings.TrimRight(text[:loc[0]], " -–—‒−")
		if left != "" {
			return left, strings.TrimSpace(text[loc[0]:])
		}
	}

	if loc := rangeSeparator.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[1]:])
	}

	// Bare hyphen: pick the split where both halves parse ("2019-2021", "2020-05-2021-06")
	for i := 0; i < len(text); i++ {
		if text[i] != '-' {
			continue
		}
		left, right := strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		if parsesOrCurrent(left) && parsesOrCurrent(right) {
			return left, right
		}
	}
	return text, ""
}

func parsesOrCurrent(s string) bool {
	n := normalize(s)
	if currentWords[n] {
		return true
	}
	_, ok := parseFixed(n)
	return ok
}

// MonthsSince returns whole calendar months from p to now, never negative
func MonthsSince(p Point, now time.Time) int {
	ref := Point{Year: now.Year(), Month: int(now.Month())}
	return max(0, ref.Index()-p.Index())
}

// TenureMonths returns whole calendar months between start and end, never negative
func TenureMonths(start, end Point) int {
	return max(0, end.Index()-start.Index())
}

// Span is the resolved date range of one position
type Span struct {
	Start   Point `json:"start"`
	End     Point `json:"end"`
	Current bool  `json:"current"`
}

// Months returns the tenure of the span
func (s Span) Months() int {
	return TenureMonths(s.Start, s.End)
}

// PositionSpan resolves a position's dates. Explicit start/end fields win over the
// unsplit Dates string. A parsed start with an empty end is treated as ongoing.
func PositionSpan(p types.Position, now time.Time) (Span, bool) {
	startRaw, endRaw := p.StartDate, p.EndDate
	if strings.TrimSpace(startRaw) == "" && strings.TrimSpace(p.Dates) != "" {
		startRaw, endRaw = ExtractDatesFromRange(p.Dates)
	}

	start, ok := ParseDate(startRaw, now)
	if !ok || start.Current {
		return Span{}, false
	}

	if strings.TrimSpace(endRaw) == "" {
		endRaw = "present"
	}
	end, ok := ParseDate(endRaw, now)
	if !ok {
		return Span{}, false
	}
	if end.Index() < start.Index() {
		return Span{}, false
	}
	return Span{Start: start, End: end, Current: end.Current}, true
}

// Spans resolves every position that has parseable dates, in input order
func Spans(positions []types.Position, now time.Time) []Span {
	spans := make([]Span, 0, len(positions))
	for _, p := range positions {
		if s, ok := PositionSpan(p, now); ok {
			spans = append(spans, s)
		}
	}
	return spans
}

// TotalMonths sums span tenure after merging overlapping ranges, so concurrent jobs
// are not double counted.
func TotalMonths(spans []Span) int {
	if len(spans) == 0 {
		return 0
	}

	type interval struct{ lo, hi int }
	intervals := make([]interval, 0, len(spans))
	for _, s := range spans {
		intervals = append(intervals, interval{s.Start.Index(), s.End.Index()})
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].lo < intervals[j].lo })

	total := 0
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.lo <= cur.hi {
			cur.hi = max(cur.hi, iv.hi)
			continue
		}
		total += cur.hi - cur.lo
		cur = iv
	}
	total += cur.hi - cur.lo
	return total
}
