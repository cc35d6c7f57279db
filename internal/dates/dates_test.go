package dates

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

var now = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   Point
		wantOK bool
	}{
		{"year only", "2020", Point{Year: 2020, Month: 1}, true},
		{"year-month", "2020-05", Point{Year: 2020, Month: 5}, true},
		{"year/month", "2020/11", Point{Year: 2020, Month: 11}, true},
		{"month/year", "03/2019", Point{Year: 2019, Month: 3}, true},
		{"short month", "Jan 2020", Point{Year: 2020, Month: 1}, true},
		{"full month", "September 2021", Point{Year: 2021, Month: 9}, true},
		{"sept abbreviation", "Sept 2021", Point{Year: 2021, Month: 9}, true},
		{"month with dot", "Feb. 2018", Point{Year: 2018, Month: 2}, true},
		{"month with comma", "March, 2017", Point{Year: 2017, Month: 3}, true},
		{"apostrophe year", "Jun '19", Point{Year: 2019, Month: 6}, true},
		{"extra whitespace", "  Jan    2020 ", Point{Year: 2020, Month: 1}, true},
		{"upper case", "DECEMBER 2015", Point{Year: 2015, Month: 12}, true},
		{"present", "Present", Point{Year: 2026, Month: 10, Current: true}, true},
		{"current lowercase", "current", Point{Year: 2026, Month: 10, Current: true}, true},
		{"empty", "", Point{}, false},
		{"garbled", "sometime last year", Point{}, false},
		{"bad month number", "2020-13", Point{}, false},
		{"bad month name", "Smarch 2020", Point{}, false},
		{"implausible year", "1492", Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDatesFromRange(t *testing.T) {
	tests := []struct {
		in        string
		wantStart string
		wantEnd   string
	}{
		{"Jan 2020 - Present", "Jan 2020", "Present"},
		{"2020 - Present", "2020", "Present"},
		{"2019–2021", "2019", "2021"},
		{"Mar 2018 — Jun 2019", "Mar 2018", "Jun 2019"},
		{"2019-2021", "2019", "2021"},
		{"2020-05 - 2021-06", "2020-05", "2021-06"},
		{"2020-05-2021-06", "2020-05", "2021-06"},
		{"May 2017 to Current", "May 2017", "Current"},
		{"Jan 2020 to date", "Jan 2020", "to date"},
		{"2019 till date", "2019", "till date"},
		{"Mar 2018 - to date", "Mar 2018", "to date"},
		{"2015", "2015", ""},
		{"", "", ""},
		{"   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end := ExtractDatesFromRange(tt.in)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestMonthsSinceAndTenure(t *testing.T) {
	assert.Equal(t, 0, MonthsSince(Point{Year: 2026, Month: 10}, now))
	assert.Equal(t, 13, MonthsSince(Point{Year: 2025, Month: 9}, now))
	assert.Equal(t, 0, MonthsSince(Point{Year: 2027, Month: 1}, now), "future dates clamp to zero")

	assert.Equal(t, 12, TenureMonths(Point{Year: 2020, Month: 1}, Point{Year: 2021, Month: 1}))
	assert.Equal(t, 11, TenureMonths(Point{Year: 2020, Month: 1}, Point{Year: 2020, Month: 12}))
	assert.Equal(t, 0, TenureMonths(Point{Year: 2021, Month: 1}, Point{Year: 2020, Month: 1}))
}

func TestPositionSpan(t *testing.T) {
	tests := []struct {
		name    string
		pos     types.Position
		wantOK  bool
		months  int
		current bool
	}{
		{"explicit fields", types.Position{StartDate: "Jan 2020", EndDate: "Jan 2022"}, true, 24, false},
		{"unsplit range", types.Position{Dates: "Mar 2024 - Present"}, true, 31, true},
		{"missing end is ongoing", types.Position{StartDate: "2026-01"}, true, 9, true},
		{"no dates", types.Position{Title: "Engineer"}, false, 0, false},
		{"unparseable start", types.Position{StartDate: "a while ago", EndDate: "2020"}, false, 0, false},
		{"inverted range", types.Position{StartDate: "2022", EndDate: "2020"}, false, 0, false},
		{"present as start", types.Position{StartDate: "Present"}, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := PositionSpan(tt.pos, now)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.months, span.Months())
				assert.Equal(t, tt.current, span.Current)
			}
		})
	}
}

func TestTotalMonths_MergesOverlaps(t *testing.T) {
	positions := []types.Position{
		{StartDate: "Jan 2018", EndDate: "Jan 2020"},
		{StartDate: "Jan 2019", EndDate: "Jan 2021"}, // overlaps the first by a year
		{StartDate: "Jan 2022", EndDate: "Jan 2023"},
	}
	spans := Spans(positions, now)
	require.Len(t, spans, 3)
	assert.Equal(t, 48, TotalMonths(spans))
	assert.Equal(t, 0, TotalMonths(nil))
}

func TestRecency(t *testing.T) {
	tests := []struct {
		name       string
		positions  []types.Position
		wantPoints float64
		wantStatus RecencyStatus
	}{
		{"current job", []types.Position{{Dates: "2020 - Present"}}, 3, StatusCurrentlyEmployed},
		{"left two months ago", []types.Position{{StartDate: "2019", EndDate: "Aug 2026"}}, 2, StatusRecentlyLeft},
		{"left exactly three months ago", []types.Position{{StartDate: "2019", EndDate: "Jul 2026"}}, 2, StatusRecentlyLeft},
		{"left eight months ago", []types.Position{{StartDate: "2019", EndDate: "Feb 2026"}}, 1, StatusGapUnderYear},
		{"left two years ago", []types.Position{{StartDate: "2019", EndDate: "Oct 2024"}}, 0, StatusExtendedGap},
		{"latest end wins", []types.Position{
			{StartDate: "2015", EndDate: "2017"},
			{StartDate: "2019", EndDate: "Sep 2026"},
		}, 2, StatusRecentlyLeft},
		{"current job to date", []types.Position{{Dates: "Jan 2020 to date"}}, 3, StatusCurrentlyEmployed},
		{"current job till date", []types.Position{{Dates: "2019 till date"}}, 3, StatusCurrentlyEmployed},
		{"no experience", nil, 0, StatusNoExperience},
		{"undated experience", []types.Position{{Title: "Engineer"}}, 0, StatusNoExperience},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recency(Spans(tt.positions, now), now)
			assert.Equal(t, tt.wantPoints, got.Points)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestIsContractRole(t *testing.T) {
	tests := []struct {
		pos  types.Position
		want bool
	}{
		{types.Position{Title: "Contract Developer"}, true},
		{types.Position{Title: "Developer", Company: "Freelance"}, true},
		{types.Position{Title: "Analyst", Description: "Temporary assignment covering leave"}, true},
		{types.Position{Title: "Temp Receptionist"}, true},
		{types.Position{Title: "Contracts Manager"}, false},
		{types.Position{Title: "Template Designer"}, false},
		{types.Position{Title: "Software Engineer"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.pos.Title, func(t *testing.T) {
			assert.Equal(t, tt.want, IsContractRole(tt.pos))
		})
	}
}

func TestJobHopping_FourShortStints(t *testing.T) {
	positions := []types.Position{
		{Title: "A", StartDate: "Jan 2018", EndDate: "Aug 2018"}, // 7
		{Title: "B", StartDate: "Sep 2018", EndDate: "May 2019"}, // 8
		{Title: "C", StartDate: "Jun 2019", EndDate: "Mar 2020"}, // 9
		{Title: "D", StartDate: "Apr 2020", EndDate: "Nov 2020"}, // 7
	}

	got := JobHopping(positions, now)
	assert.Equal(t, -3.0, got.Penalty)
	require.Len(t, got.ShortStints, 4)
	assert.Equal(t, []int{7, 8, 9, 7}, []int{
		got.ShortStints[0].Months, got.ShortStints[1].Months, got.ShortStints[2].Months, got.ShortStints[3].Months,
	})
}

func TestJobHopping_PenaltyCap(t *testing.T) {
	for _, n := range []int{4, 10} {
		t.Run(fmt.Sprintf("%d stints", n), func(t *testing.T) {
			positions := make([]types.Position, n)
			for i := range positions {
				positions[i] = types.Position{
					StartDate: fmt.Sprintf("%d-01", 2000+i),
					EndDate:   fmt.Sprintf("%d-06", 2000+i),
				}
			}
			got := JobHopping(positions, now)
			assert.Equal(t, -3.0, got.Penalty)
			assert.Len(t, got.ShortStints, n)
		})
	}
}

func TestJobHopping_Boundaries(t *testing.T) {
	tests := []struct {
		name         string
		positions    []types.Position
		wantPenalty  float64
		wantExcluded int
	}{
		{"exactly twelve months is safe", []types.Position{{StartDate: "Jan 2020", EndDate: "Jan 2021"}}, 0, 0},
		{"eleven months is short", []types.Position{{StartDate: "Jan 2020", EndDate: "Dec 2020"}}, -1, 0},
		{"contract role excluded", []types.Position{{Title: "Contractor", StartDate: "Jan 2020", EndDate: "Mar 2020"}}, 0, 1},
		{"ongoing role excluded", []types.Position{{StartDate: "Apr 2026", EndDate: "Present"}}, 0, 0},
		{"undated role ignored", []types.Position{{Title: "Engineer"}}, 0, 0},
		{"empty", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JobHopping(tt.positions, now)
			assert.Equal(t, tt.wantPenalty, got.Penalty)
			assert.Equal(t, tt.wantExcluded, got.ExcludedCount)
		})
	}
}
