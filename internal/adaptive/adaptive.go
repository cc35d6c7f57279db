// Package adaptive is the top-level scorer: it resolves mode and level, gathers the
// collaborator inputs (grammar issues, fetched job descriptions) through the cache,
// delegates to the mode aggregator and attaches recommendations.
package adaptive

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-scorer/internal/aggregate"
	"github.com/jonathan/resume-scorer/internal/cache"
	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/grammar"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// grammarNamespace prefixes grammar results in the cache
	grammarNamespace = "grammar"
	// unresolvedMode labels failures that happen before a mode is known
	unresolvedMode = "unresolved"
)

// Request is one scoring call
type Request struct {
	ID             string               `json:"id,omitempty"`
	Resume         *types.ResumeData    `json:"resume" validate:"required"`
	Mode           string               `json:"mode,omitempty"`
	Level          string               `json:"level" validate:"required"`
	Role           string               `json:"role,omitempty"`
	JobDescription string               `json:"job_description,omitempty"`
	JobURL         string               `json:"job_url,omitempty" validate:"omitempty,url"`
	GrammarIssues  []types.GrammarIssue `json:"grammar_issues,omitempty"`
}

// Scorer orchestrates one or many scoring calls. It is safe for concurrent use.
type Scorer struct {
	scorer  *scoring.Scorer
	checker grammar.Checker
	cache   cache.Cache
	fetcher *fetch.CachedFetcher
	metrics *observability.Metrics
	logger  *slog.Logger
	flight  singleflight.Group
}

// Option configures a Scorer
type Option func(*Scorer)

// WithGrammarChecker sets the grammar collaborator. Without one, requests that do
// not carry their own issues get the neutral grammar score.
func WithGrammarChecker(c grammar.Checker) Option {
	return func(s *Scorer) { s.checker = c }
}

// WithCache sets the cache used for grammar results
func WithCache(c cache.Cache) Option {
	return func(s *Scorer) { s.cache = c }
}

// WithFetcher enables job description URLs
func WithFetcher(f *fetch.CachedFetcher) Option {
	return func(s *Scorer) { s.fetcher = f }
}

// WithMetrics records scores and cache lookups
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scorer) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Scorer) { s.logger = l }
}

// ErrNoGrammarChecker is reported to the polish scorer when no checker is configured
var ErrNoGrammarChecker = errors.New("no grammar checker configured")

// New creates an adaptive scorer
func New(s *scoring.Scorer, opts ...Option) *Scorer {
	a := &Scorer{
		scorer: s,
		cache:  cache.Noop{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = cache.Noop{}
	}
	return a
}

// Parameters exposes the per-parameter scorer
func (a *Scorer) Parameters() *scoring.Scorer {
	return a.scorer
}

// Score resolves mode and level, runs the mode aggregator and attaches
// interpretation and recommendations. Usage errors are returned as *types.UsageError.
func (a *Scorer) Score(ctx context.Context, req Request) (*types.ScoreResult, error) {
	jd, err := a.jobDescription(ctx, req)
	if err != nil {
		a.metrics.ScoreFailed(unresolvedMode)
		return nil, err
	}

	mode, err := types.NormalizeScoringMode(req.Mode, jd)
	if err != nil {
		a.metrics.ScoreFailed(unresolvedMode)
		return nil, err
	}
	level, err := types.ParseLevel(req.Level)
	if err != nil {
		a.metrics.ScoreFailed(string(mode))
		return nil, err
	}

	resume := req.Resume
	if resume == nil {
		resume = &types.ResumeData{}
	}

	in := aggregate.Input{
		Resume:         resume,
		Level:          level,
		Role:           req.Role,
		JobDescription: jd,
	}
	if mode == types.ModeQualityCoach {
		in.GrammarIssues, in.GrammarErr = a.grammarIssues(ctx, resume.FullText(), req.GrammarIssues)
	}

	var res *aggregate.Result
	switch mode {
	case types.ModeATSSimulation:
		res, err = aggregate.ATSSimulation(a.scorer, in)
		if err != nil {
			a.metrics.ScoreFailed(string(mode))
			return nil, err
		}
	default:
		res = aggregate.QualityCoach(a.scorer, in)
	}

	result := &types.ScoreResult{
		Score:           res.Score,
		Mode:            res.Mode,
		Role:            res.Role,
		Level:           level,
		Breakdown:       res.Breakdown,
		Interpretation:  res.Interpretation,
		Recommendations: Recommend(res.Breakdown, res.KeywordDetails),
		KeywordDetails:  res.KeywordDetails,
	}

	a.metrics.ObserveScore(string(mode), result.Score)
	a.logger.DebugContext(ctx, "resume scored",
		"request_id", req.ID,
		"mode", mode,
		"level", level,
		"role", res.Role,
		"role_fallback", res.RoleFallback,
		"score", result.Score)
	return result, nil
}

// jobDescription returns the inline description, or fetches JobURL when the inline
// one is blank.
func (a *Scorer) jobDescription(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.JobDescription) != "" || strings.TrimSpace(req.JobURL) == "" {
		return req.JobDescription, nil
	}
	if a.fetcher == nil {
		return "", &types.UsageError{Message: "job_url is not supported by this scorer"}
	}

	page, err := a.fetcher.Fetch(ctx, req.JobURL)
	if err != nil {
		return "", err
	}
	a.metrics.CacheLookup("jd_url", page.FromCache)
	return page.Text, nil
}

// grammarIssues prefers caller-supplied issues, then the cache, then the checker.
// Concurrent checks of the same text share one call.
func (a *Scorer) grammarIssues(ctx context.Context, text string, supplied []types.GrammarIssue) ([]types.GrammarIssue, error) {
	if supplied != nil {
		return supplied, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if a.checker == nil {
		return nil, ErrNoGrammarChecker
	}

	key := cache.Namespaced(grammarNamespace, text)

	raw, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.WarnContext(ctx, "grammar cache lookup failed", "error", err)
	}
	if ok {
		var issues []types.GrammarIssue
		if err := json.Unmarshal(raw, &issues); err == nil {
			a.metrics.CacheLookup(grammarNamespace, true)
			return issues, nil
		}
	}
	a.metrics.CacheLookup(grammarNamespace, false)

	// The shared call outlives any single caller; the checker bounds it with its own timeout.
	shared := context.WithoutCancel(ctx)
	ch := a.flight.DoChan(key, func() (any, error) {
		issues, err := a.checker.Check(shared, text)
		if err != nil {
			return nil, err
		}
		if data, mErr := json.Marshal(issues); mErr == nil {
			if sErr := a.cache.Set(shared, key, data); sErr != nil {
				a.logger.WarnContext(shared, "grammar cache store failed", "error", sErr)
			}
		}
		return issues, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: ctx.Err()}
	}
	if res.Err != nil {
		a.metrics.GrammarFailure()
		a.logger.WarnContext(ctx, "grammar check failed, using neutral score", "error", res.Err)
		return nil, res.Err
	}
	return res.Val.([]types.GrammarIssue), nil
}

// ClearCache drops every cached collaborator result
func (a *Scorer) ClearCache(ctx context.Context) error {
	return a.cache.Clear(ctx)
}
