package grammar

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jonathan/resume-scorer/internal/types"
)

// BreakerSettings configures the circuit breaker around a checker
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after half of at least five requests fail
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.5,
	}
}

// BreakerChecker short-circuits a failing checker. While the breaker is open Check
// fails fast and the polish scorer falls back to its neutral grammar score.
type BreakerChecker struct {
	next Checker
	cb   *gobreaker.CircuitBreaker[[]types.GrammarIssue]
}

// NewBreakerChecker wraps next with a circuit breaker
func NewBreakerChecker(next Checker, settings BreakerSettings, logger *slog.Logger) *BreakerChecker {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[[]types.GrammarIssue](gobreaker.Settings{
		Name:        "grammar",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	})

	return &BreakerChecker{next: next, cb: cb}
}

// Check runs the wrapped checker under the breaker
func (b *BreakerChecker) Check(ctx context.Context, text string) ([]types.GrammarIssue, error) {
	return b.cb.Execute(func() ([]types.GrammarIssue, error) {
		return b.next.Check(ctx, text)
	})
}

// State reports the breaker state ("closed", "half-open" or "open")
func (b *BreakerChecker) State() string {
	return b.cb.State().String()
}
