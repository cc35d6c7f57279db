// Package scoring implements the per-parameter resume scorers. Every scorer is a pure
// function of resume fields plus level/role context and returns a result whose score
// stays within [0, max], including for empty or malformed input.
package scoring

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-scorer/internal/classify"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/tables"
)

// Parameter names used in results and breakdowns
const (
	ParamActionVerbs    = "action_verbs"
	ParamQuantification = "quantification"
	ParamVaguePhrases   = "vague_phrases"
	ParamPassiveVoice   = "passive_voice"
	ParamGrammar        = "grammar"
	ParamCareerRecency  = "career_recency"
	ParamJobHopping     = "job_hopping"
	ParamYearsAlignment = "years_alignment"
	ParamATSFormatting  = "ats_formatting"
	ParamSectionBalance = "section_balance"
	ParamParseability   = "parseability"
	ParamContact        = "contact_completeness"
	ParamRoleKeywords   = "role_keyword_fit"
	ParamJDKeywords     = "jd_keyword_match"
)

// Maximum points per parameter
const (
	MaxActionVerbs    = 15.0
	MaxQuantification = 10.0
	MaxVaguePhrases   = 5.0
	MaxPassiveVoice   = 2.0
	MaxGrammar        = 10.0
	MaxCareerRecency  = 3.0
	MaxYearsAlignment = 10.0
	MaxATSFormatting  = 7.0
	MaxSectionBalance = 5.0
	MaxParseability   = 1.0
	MaxContact        = 10.0
	MaxRoleKeywords   = 10.0
	MaxJDKeywords     = 10.0
	JobHoppingCap     = 3.0
)

// Diagnostic reasons recorded when a parameter falls back to its floor
const (
	ReasonNoBullets          = "no_bullets"
	ReasonNoExperience       = "no_experience"
	ReasonNoText             = "no_text"
	ReasonNoMetadata         = "metadata_unavailable"
	ReasonNoContact          = "no_contact"
	ReasonGrammarUnavailable = "grammar_check_unavailable"
	ReasonNoKeywords         = "no_keywords"
)

// Scorer bundles the read-only collaborators every parameter needs
type Scorer struct {
	tables     *tables.Tables
	classifier *classify.Classifier
	keywords   *keywords.Engine
	validate   *validator.Validate
	now        func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithClock overrides the time source used for recency and tenure
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// New creates a scorer over the given tables
func New(t *tables.Tables, opts ...Option) *Scorer {
	s := &Scorer{
		tables:     t,
		classifier: classify.New(t),
		keywords:   keywords.New(t),
		validate:   validator.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the tables the scorer was built with
func (s *Scorer) Tables() *tables.Tables {
	return s.tables
}

// Classifier returns the verb/phrase classifier
func (s *Scorer) Classifier() *classify.Classifier {
	return s.classifier
}

// Keywords returns the keyword engine
func (s *Scorer) Keywords() *keywords.Engine {
	return s.keywords
}

// Now returns the scorer's current time
func (s *Scorer) Now() time.Time {
	return s.now()
}

// stepScore returns the points of the first threshold v reaches. Thresholds are
// ordered from highest to lowest.
func stepScore(v float64, steps []step) float64 {
	for _, st := range steps {
		if v >= st.min {
			return st.points
		}
	}
	return 0
}

type step struct {
	min    float64
	points float64
}
