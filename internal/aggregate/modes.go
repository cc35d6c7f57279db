package aggregate

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Quality Coach categories
const (
	CatContentQuality   = "content_quality"
	CatAchievementDepth = "achievement_depth"
	CatKeywordsFit      = "keywords_fit"
	CatPolish           = "polish"
	CatReadability      = "readability"
)

// ATS Simulation categories
const (
	CatKeywordMatch = "keyword_match"
	CatExperience   = "experience"
	CatFormatting   = "formatting"
	CatStructure    = "structure"
	CatContact      = "contact"
)

// QualityOrder is the breakdown order of Quality Coach
var QualityOrder = []string{CatContentQuality, CatAchievementDepth, CatKeywordsFit, CatPolish, CatReadability}

// QualityDefaults are the Quality Coach category maxima before role overrides
var QualityDefaults = map[string]int{
	CatContentQuality:   30,
	CatAchievementDepth: 20,
	CatKeywordsFit:      25,
	CatPolish:           15,
	CatReadability:      10,
}

// ATSOrder is the breakdown order of ATS Simulation
var ATSOrder = []string{CatKeywordMatch, CatExperience, CatFormatting, CatStructure, CatContact}

// ATSWeights are the fixed ATS Simulation category maxima
var ATSWeights = map[string]int{
	CatKeywordMatch: 35,
	CatExperience:   25,
	CatFormatting:   20,
	CatStructure:    10,
	CatContact:      10,
}

var labels = map[string]string{
	CatContentQuality:   "Content Quality",
	CatAchievementDepth: "Achievement Depth",
	CatKeywordsFit:      "Keywords & Fit",
	CatPolish:           "Polish",
	CatReadability:      "Readability",
	CatKeywordMatch:     "Keyword Match",
	CatExperience:       "Experience",
	CatFormatting:       "Formatting",
	CatStructure:        "Structure",
	CatContact:          "Contact Information",
}

// Input is everything a mode needs for one resume
type Input struct {
	Resume         *types.ResumeData
	Level          types.ExperienceLevel
	Role           string
	JobDescription string
	GrammarIssues  []types.GrammarIssue
	GrammarErr     error
}

// Result is a scored mode breakdown
type Result struct {
	Mode           types.ScoringMode
	Score          float64
	Breakdown      types.ScoreBreakdown
	Interpretation string
	Role           string
	RoleFallback   bool
	KeywordDetails *types.KeywordDetails
	JobKeywords    *keywords.JobKeywords
}

// QualityCoach scores the resume against the role/level rubric. The role's weight
// overrides are renormalized so the category maxima always sum to 100.
func QualityCoach(s *scoring.Scorer, in Input) *Result {
	resume := in.Resume
	if resume == nil {
		resume = &types.ResumeData{}
	}
	bullets := resume.Bullets()
	role, fallback := s.Tables().ResolveRole(in.Role)
	weights := NormalizeWeights(QualityDefaults, role.Weights, QualityOrder)

	categories := []Category{
		{
			Name: CatContentQuality,
			Components: []types.ParameterResult{
				s.ActionVerbs(bullets),
				s.Quantification(bullets, in.Level),
				s.PassiveVoice(bullets),
			},
		},
		{
			Name: CatAchievementDepth,
			Components: []types.ParameterResult{
				s.VaguePhrases(bullets),
				s.YearsAlignment(resume.Experience, in.Level),
				s.CareerRecency(resume.Experience),
			},
			Penalties: []types.PenaltyResult{s.JobHopping(resume.Experience)},
		},
		{
			Name:       CatKeywordsFit,
			Components: []types.ParameterResult{s.RoleKeywordFit(resume, role, fallback)},
		},
		{
			Name: CatPolish,
			Components: []types.ParameterResult{
				s.Grammar(resume.FullText(), in.GrammarIssues, in.GrammarErr),
				s.ATSFormatting(resume.Metadata),
			},
		},
		{
			Name: CatReadability,
			Components: []types.ParameterResult{
				s.SectionBalance(resume, in.Level),
				s.Parseability(resume).AsParameter(),
			},
		},
	}
	for i := range categories {
		categories[i].Label = labels[categories[i].Name]
		categories[i].Max = weights[categories[i].Name]
	}

	breakdown := Compose(categories)
	total := Total(breakdown)
	return &Result{
		Mode:           types.ModeQualityCoach,
		Score:          total,
		Breakdown:      breakdown,
		Interpretation: Interpret(total),
		Role:           role.Key,
		RoleFallback:   fallback,
	}
}

// ATSSimulation scores the resume the way a keyword-driven applicant tracking system
// would. A blank job description is a usage error.
func ATSSimulation(s *scoring.Scorer, in Input) (*Result, error) {
	if strings.TrimSpace(in.JobDescription) == "" {
		return nil, &types.UsageError{
			Message: "ats_simulation requires a non-empty job description",
			Cause:   types.ErrMissingJobDescription,
		}
	}

	resume := in.Resume
	if resume == nil {
		resume = &types.ResumeData{}
	}
	role, fallback := s.Tables().ResolveRole(in.Role)

	jd := s.Keywords().ExtractFromJobDescription(in.JobDescription)
	keywordResult, details := s.JDKeywordMatch(resume, jd)

	categories := []Category{
		{
			Name:       CatKeywordMatch,
			Components: []types.ParameterResult{keywordResult},
		},
		{
			Name: CatExperience,
			Components: []types.ParameterResult{
				s.YearsAlignment(resume.Experience, in.Level),
				s.CareerRecency(resume.Experience),
			},
			Penalties: []types.PenaltyResult{s.JobHopping(resume.Experience)},
		},
		{
			Name: CatFormatting,
			Components: []types.ParameterResult{
				s.ATSFormatting(resume.Metadata),
				s.Parseability(resume).AsParameter(),
			},
		},
		{
			Name:       CatStructure,
			Components: []types.ParameterResult{s.SectionBalance(resume, in.Level)},
		},
		{
			Name:       CatContact,
			Components: []types.ParameterResult{s.ContactCompleteness(resume.Contact)},
		},
	}
	for i := range categories {
		categories[i].Label = labels[categories[i].Name]
		categories[i].Max = ATSWeights[categories[i].Name]
	}

	breakdown := Compose(categories)
	total := Total(breakdown)
	return &Result{
		Mode:           types.ModeATSSimulation,
		Score:          total,
		Breakdown:      breakdown,
		Interpretation: Interpret(total),
		Role:           role.Key,
		RoleFallback:   fallback,
		KeywordDetails: details,
		JobKeywords:    &jd,
	}, nil
}
