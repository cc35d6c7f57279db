package scoring

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/dates"
	"github.com/jonathan/resume-scorer/internal/tables"
	"github.com/jonathan/resume-scorer/internal/types"
)

var fixedNow = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func newScorer() *Scorer {
	return New(tables.Default(), WithClock(func() time.Time { return fixedNow }))
}

func assertInRange(t *testing.T, r types.ParameterResult) {
	t.Helper()
	assert.GreaterOrEqual(t, r.Score, 0.0, r.Name)
	assert.LessOrEqual(t, r.Score, r.MaxScore, r.Name)
	assert.NotNil(t, r.Details, r.Name)
}

func TestEmptyInput_EveryScorerFloors(t *testing.T) {
	s := newScorer()

	for _, level := range types.AllLevels {
		t.Run(string(level), func(t *testing.T) {
			results := []types.ParameterResult{
				s.ActionVerbs(nil),
				s.Quantification(nil, level),
				s.VaguePhrases([]string{}),
				s.PassiveVoice(nil),
				s.Grammar("", nil, nil),
				s.CareerRecency(nil),
				s.YearsAlignment(nil, level),
				s.SectionBalance(nil, level),
				s.SectionBalance(&types.ResumeData{}, level),
				s.ContactCompleteness(nil),
				s.Parseability(nil).AsParameter(),
				s.Parseability(&types.ResumeData{}).AsParameter(),
			}
			for _, r := range results {
				assertInRange(t, r)
				assert.Equal(t, 0.0, r.Score, r.Name)
			}

			penalty := s.JobHopping(nil)
			assert.Equal(t, 0.0, penalty.Penalty)
		})
	}
}

func TestActionVerbs(t *testing.T) {
	s := newScorer()

	tests := []struct {
		name      string
		bullets   []string
		wantScore float64
	}{
		{
			name:      "all exceptional",
			bullets:   []string{"Spearheaded a rewrite", "Architected the platform", "Founded the guild"},
			wantScore: 15,
		},
		{
			name:      "all weak phrases",
			bullets:   []string{"Responsible for reports", "Worked on billing"},
			wantScore: 0,
		},
		{
			name:      "mixed",
			bullets:   []string{"Led a team of 5", "Developed a CLI", "Worked on docs", "Helped users"},
			wantScore: 4 + 4, // 75% coverage, average tier 1.5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ActionVerbs(tt.bullets)
			assertInRange(t, got)
			assert.Equal(t, tt.wantScore, got.Score)
		})
	}
}

func TestCoveragePoints_StepFunction(t *testing.T) {
	assert.Equal(t, 6.0, CoveragePoints(85))
	assert.Equal(t, 6.0, CoveragePoints(94))
	assert.Equal(t, 7.0, CoveragePoints(95))
	assert.Equal(t, 4.0, CoveragePoints(70))
	assert.Equal(t, 2.0, CoveragePoints(50))
	assert.Equal(t, 0.0, CoveragePoints(49.9))

	prev := 0.0
	for pct := 0.0; pct <= 100; pct += 0.5 {
		p := CoveragePoints(pct)
		assert.GreaterOrEqual(t, p, prev, "coverage %.1f", pct)
		prev = p
	}
}

func TestQuantification_Scenario(t *testing.T) {
	s := newScorer()

	bullets := []string{
		"Increased revenue by 45%",
		"Reduced costs by $200K annually",
		"Led team of 12 engineers",
		"Completed project in 6 months",
		"Worked on various projects",
		"Improved system performance",
	}

	got := s.Quantification(bullets, types.LevelBeginner)
	assert.Equal(t, 10.0, got.Score)
	assert.Equal(t, 10.0, got.MaxScore)
	assert.Equal(t, 4, got.Details["quantified_count"])
	assert.Equal(t, 2, got.Details["high"])
	assert.Equal(t, 1, got.Details["medium"])
	assert.Equal(t, 1, got.Details["low"])
}

func TestQuantification_LevelThresholds(t *testing.T) {
	s := newScorer()

	// one high and one low bullet out of four: (1.0 + 0.5) / 4 = 0.375
	bullets := []string{"Grew ARR by 30%", "Cut churn 5 points", "Wrote docs", "Ran meetings"}

	tests := []struct {
		level types.ExperienceLevel
		want  float64
	}{
		{types.LevelBeginner, 8},
		{types.LevelIntermediary, 6},
		{types.LevelSenior, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Quantification(bullets, tt.level).Score)
		})
	}
}

func TestClassifyMagnitude(t *testing.T) {
	tests := []struct {
		bullet string
		want   Magnitude
	}{
		{"Increased revenue by 45%", MagnitudeHigh},
		{"Saved €1.2M in licensing", MagnitudeHigh},
		{"Improved throughput 3x", MagnitudeHigh},
		{"Doubled conversion", MagnitudeHigh},
		{"Managed 25 direct reports", MagnitudeMedium},
		{"Onboarded 1,200 customers", MagnitudeMedium},
		{"Processed 40 invoices daily", MagnitudeMedium},
		{"Completed project in 6 months", MagnitudeLow},
		{"Shipped 3 features", MagnitudeLow},
		{"Joined in 2019 as an intern", MagnitudeNone},
		{"Improved system performance", MagnitudeNone},
	}

	for _, tt := range tests {
		t.Run(tt.bullet, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMagnitude(tt.bullet))
		})
	}
}

func TestVaguePhrases(t *testing.T) {
	s := newScorer()

	got := s.VaguePhrases([]string{"Worked on various projects", "Reduced latency by 30%"})
	assert.Equal(t, 4.0, got.Score)
	assert.Equal(t, 2, got.Details["count"])

	clean := s.VaguePhrases([]string{"Reduced latency by 30%"})
	assert.Equal(t, 5.0, clean.Score)
}

func TestPassiveVoice(t *testing.T) {
	s := newScorer()

	tests := []struct {
		name    string
		passive int
		want    float64
	}{
		{"none", 0, 2.0},
		{"one", 1, 1.5},
		{"two", 2, 1.0},
		{"three", 3, 0},
		{"ten", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bullets := []string{"Led the migration"}
			for i := 0; i < tt.passive; i++ {
				bullets = append(bullets, fmt.Sprintf("Report %d was generated weekly", i))
			}
			got := s.PassiveVoice(bullets)
			assertInRange(t, got)
			assert.Equal(t, tt.want, got.Score)
			assert.Equal(t, tt.passive, got.Details["passive_count"])
		})
	}
}

func TestGrammarPoints(t *testing.T) {
	tests := []struct {
		critical int
		minor    int
		want     float64
	}{
		{0, 0, 10},
		{0, 2, 9},
		{0, 5, 8},
		{0, 10, 7},
		{0, 30, 6},
		{1, 0, 7},
		{1, 40, 7},
		{2, 0, 5},
		{3, 0, 4},
		{4, 0, 3},
		{5, 0, 3},
		{6, 0, 0},
		{20, 3, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d critical %d minor", tt.critical, tt.minor), func(t *testing.T) {
			assert.Equal(t, tt.want, GrammarPoints(tt.critical, tt.minor))
		})
	}
}

func TestGrammar(t *testing.T) {
	s := newScorer()

	twoCritical := []types.GrammarIssue{
		{Category: "grammar", Severity: "critical", Message: "Subject-verb agreement"},
		{Category: "spelling", Severity: "Error", Message: "Possible typo"},
		{Category: "style", Severity: "minor", Message: "Wordy"},
	}
	got := s.Grammar("Some resume text", twoCritical, nil)
	assert.Equal(t, 5.0, got.Score)
	assert.Equal(t, 2, got.Details["critical_count"])
	assert.Equal(t, 1, got.Details["minor_count"])

	unavailable := s.Grammar("Some resume text", nil, errors.New("connection refused"))
	assert.Equal(t, 5.0, unavailable.Score)
	assert.Equal(t, ReasonGrammarUnavailable, unavailable.Details["reason"])

	clean := s.Grammar("Some resume text", nil, nil)
	assert.Equal(t, 10.0, clean.Score)
}

func TestCareerRecency_CurrentlyEmployed(t *testing.T) {
	s := newScorer()

	got := s.CareerRecency([]types.Position{{Title: "Engineer", Dates: "2020 - Present"}})
	assert.Equal(t, 3.0, got.Score)
	assert.Equal(t, 3.0, got.MaxScore)
	assert.Equal(t, dates.StatusCurrentlyEmployed, got.Details["status"])
}

func TestJobHopping_Scenario(t *testing.T) {
	s := newScorer()

	positions := []types.Position{
		{Title: "A", StartDate: "Jan 2018", EndDate: "Aug 2018"},
		{Title: "B", StartDate: "Sep 2018", EndDate: "May 2019"},
		{Title: "C", StartDate: "Jun 2019", EndDate: "Mar 2020"},
		{Title: "D", StartDate: "Apr 2020", EndDate: "Nov 2020"},
	}

	got := s.JobHopping(positions)
	assert.Equal(t, -3.0, got.Penalty)
	assert.Equal(t, 3.0, got.Cap)
	assert.Equal(t, 4, got.Details["short_stints_count"])
}

func TestYearsAlignment(t *testing.T) {
	s := newScorer()

	span := func(years int) []types.Position {
		return []types.Position{{StartDate: fmt.Sprintf("Jan %d", 2026-years), EndDate: "Jan 2026"}}
	}

	tests := []struct {
		name  string
		level types.ExperienceLevel
		pos   []types.Position
		want  float64
	}{
		{"beginner inside range", types.LevelBeginner, span(1), 10},
		{"beginner one year over", types.LevelBeginner, span(3), 7},
		{"beginner grossly over", types.LevelBeginner, span(10), 0},
		{"intermediary inside", types.LevelIntermediary, span(4), 10},
		{"no dated experience", types.LevelIntermediary, nil, 0},
		{"senior three under", types.LevelSenior, span(2), 2},
		{"senior inside", types.LevelSenior, span(12), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.YearsAlignment(tt.pos, tt.level)
			assertInRange(t, got)
			assert.Equal(t, tt.want, got.Score)
		})
	}
}

func TestYearsAlignment_OverlapsMerged(t *testing.T) {
	s := newScorer()

	positions := []types.Position{
		{StartDate: "Jan 2023", EndDate: "Jan 2025"},
		{StartDate: "Jan 2023", EndDate: "Jan 2025"}, // concurrent side job
	}
	got := s.YearsAlignment(positions, types.LevelBeginner)
	assert.Equal(t, 10.0, got.Score)
	assert.Equal(t, 2.0, got.Details["total_years"])
}

func TestYearsPoints(t *testing.T) {
	assert.Equal(t, 10.0, YearsPoints(0))
	assert.Equal(t, 7.0, YearsPoints(1))
	assert.Equal(t, 5.0, YearsPoints(1.5))
	assert.Equal(t, 2.0, YearsPoints(4))
	assert.Equal(t, 0.0, YearsPoints(4.1))
}

func TestATSFormatting(t *testing.T) {
	s := newScorer()

	tests := []struct {
		name string
		meta *types.Metadata
		want float64
	}{
		{"missing metadata is neutral", nil, 3.5},
		{"clean", &types.Metadata{FontsUsed: []string{"Calibri", "Calibri-Bold"}}, 7},
		{"tables", &types.Metadata{HasTables: true}, 5},
		{"tables and text boxes", &types.Metadata{HasTables: true, HasTextBoxes: true}, 3},
		{"footer content", &types.Metadata{FooterText: "jane@example.com"}, 5.5},
		{"odd font", &types.Metadata{FontsUsed: []string{"Comic Sans MS"}}, 6},
		{"everything", &types.Metadata{
			HasTables: true, HasTextBoxes: true, HeaderText: "Jane Doe", FontsUsed: []string{"Papyrus"},
		}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ATSFormatting(tt.meta)
			assertInRange(t, got)
			assert.Equal(t, tt.want, got.Score)
		})
	}
}

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		FileName: "jane.pdf",
		Contact: &types.Contact{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+1 (555) 123-4567",
			LinkedIn: "linkedin.com/in/janedoe",
			Location: "Austin, TX",
		},
		Experience: []types.Position{
			{
				Title:     "Software Engineer",
				Company:   "Acme",
				StartDate: "Jan 2022",
				EndDate:   "Present",
				Description: "- Built REST APIs in Go serving 2M requests per day\n" +
					"- Reduced AWS costs by 30%\n" +
					"- Led migration to Kubernetes for 40 services",
			},
			{
				Title:       "Junior Developer",
				Company:     "Initech",
				StartDate:   "Jun 2019",
				EndDate:     "Dec 2021",
				Description: "- Developed Python ETL jobs\n- Wrote SQL reports for finance",
			},
		},
		Education: []types.Education{{Institution: "State University", Degree: "BSc", Field: "Computer Science"}},
		Skills:    []string{"Go", "Python", "SQL", "Docker", "Git", "Linux"},
		Metadata:  &types.Metadata{WordCount: 520, PageCount: 1, FileSizeBytes: 120_000, FontsUsed: []string{"Arial"}},
	}
}

func TestSectionBalance(t *testing.T) {
	s := newScorer()

	got := s.SectionBalance(sampleResume(), types.LevelIntermediary)
	assert.Equal(t, 5.0, got.Score)

	short := sampleResume()
	short.Metadata.WordCount = 90
	short.Education = nil
	got = s.SectionBalance(short, types.LevelSenior)
	assert.Equal(t, 1.5+1.5, got.Score)
}

func TestParseability(t *testing.T) {
	s := newScorer()

	good := s.Parseability(sampleResume())
	assert.True(t, good.Passed)
	assert.GreaterOrEqual(t, good.Score, ParseabilityPassMark)
	assert.Equal(t, 1.0, good.Checks["sections_detected"])
	assert.Equal(t, 1.0, good.Checks["bullets_parsed"])

	param := good.AsParameter()
	assert.Equal(t, ParseabilityPoints, param.MaxScore)
	assert.InDelta(t, good.Score*ParseabilityPoints, param.Score, 1e-9)

	bad := s.Parseability(&types.ResumeData{
		Experience: []types.Position{{Title: "Engineer"}},
		Metadata:   &types.Metadata{FileSizeBytes: 9 << 20, RawText: "☐☐☐ ✦✦✦ ❖❖❖ résumé"},
	})
	assert.False(t, bad.Passed)
	assert.Equal(t, 0.0, bad.Checks["file_size"])
	assert.Equal(t, 0.0, bad.Checks["special_characters"])
}

func TestContactCompleteness(t *testing.T) {
	s := newScorer()

	tests := []struct {
		name    string
		contact *types.Contact
		want    float64
	}{
		{"complete", sampleResume().Contact, 10},
		{"nil", nil, 0},
		{"empty", &types.Contact{}, 0},
		{"invalid email and short phone", &types.Contact{Name: "Jane", Email: "jane-at-example", Phone: "555"}, 2},
		{"email and phone only", &types.Contact{Email: "a@b.co", Phone: "555-123-4567"}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ContactCompleteness(tt.contact)
			assertInRange(t, got)
			assert.Equal(t, tt.want, got.Score)
		})
	}
}

func TestRoleKeywordFit(t *testing.T) {
	s := newScorer()
	tbl := tables.Default()

	role, fallback := tbl.ResolveRole("software_engineer")
	require.False(t, fallback)

	got := s.RoleKeywordFit(sampleResume(), role, fallback)
	assertInRange(t, got)
	// go, python, sql, git, rest api, docker, kubernetes, amazon web services, linux of 16
	assert.Equal(t, 6.0, got.Score)
	assert.Equal(t, false, got.Details["role_fallback"])
	assert.Equal(t, []string{"built", "developed"}, got.Details["role_verbs_used"])
	assert.Equal(t, []string{"architected", "deployed", "optimized", "automated", "refactored"}, got.Details["role_verbs_missing"])

	general, fallback := tbl.ResolveRole("astronaut")
	got = s.RoleKeywordFit(sampleResume(), general, fallback)
	assert.Equal(t, true, got.Details["role_fallback"])
	assert.Equal(t, "general", got.Details["role"])
}

func TestRoleVerbUsage(t *testing.T) {
	tests := []struct {
		name        string
		bullets     []string
		verbs       []string
		wantUsed    []string
		wantMissing []string
	}{
		{"opening verb counts", []string{"Led a team of 5", "Shipped the app"}, []string{"led", "managed"}, []string{"led"}, []string{"managed"}},
		{"verb mid-sentence does not count", []string{"Team was led by me"}, []string{"led"}, []string{}, []string{"led"}},
		{"no bullets", nil, []string{"built"}, []string{}, []string{"built"}},
		{"no verbs", []string{"Built things"}, nil, []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, missing := RoleVerbUsage(tt.bullets, tt.verbs)
			assert.Equal(t, tt.wantUsed, used)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestRoleFitPoints(t *testing.T) {
	assert.Equal(t, 10.0, RoleFitPoints(80))
	assert.Equal(t, 8.0, RoleFitPoints(60))
	assert.Equal(t, 6.0, RoleFitPoints(40))
	assert.Equal(t, 3.0, RoleFitPoints(20))
	assert.Equal(t, 1.0, RoleFitPoints(5))
	assert.Equal(t, 0.0, RoleFitPoints(0))
}

func TestJDKeywordMatch(t *testing.T) {
	s := newScorer()

	jd := s.Keywords().ExtractFromJobDescription("Required: Go, Kubernetes, Terraform, SQL\nPreferred: Docker, GraphQL")
	got, details := s.JDKeywordMatch(sampleResume(), jd)
	require.NotNil(t, details)

	assert.Equal(t, 75.0, details.RequiredPercent)
	assert.Equal(t, 50.0, details.PreferredPercent)
	assert.Equal(t, 67.5, details.OverallPercentage)
	assert.Equal(t, []string{"terraform"}, details.MissingRequired)
	assert.Equal(t, []string{"graphql"}, details.MissingPreferred)
	assert.InDelta(t, 6.75, got.Score, 1e-9)
}

func TestJDKeywordMatch_UnsectionedIsRequired(t *testing.T) {
	s := newScorer()

	jd := s.Keywords().ExtractFromJobDescription("We want someone strong in Python and Docker.")
	got, details := s.JDKeywordMatch(sampleResume(), jd)
	assert.Equal(t, []string{"docker", "python"}, details.Required)
	assert.Empty(t, details.Preferred)
	assert.Equal(t, 100.0, details.OverallPercentage)
	assert.Equal(t, MaxJDKeywords, got.Score)
}
