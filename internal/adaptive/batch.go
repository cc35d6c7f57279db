package adaptive

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultConcurrency bounds concurrent scoring in a batch
const DefaultConcurrency = 4

// BatchItem is the outcome of one batch request. Exactly one of Result and Error is set.
type BatchItem struct {
	ID     string             `json:"id"`
	Result *types.ScoreResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
	Usage  bool               `json:"usage_error,omitempty"`
	err    error
}

// Err returns the underlying error of a failed item
func (b BatchItem) Err() error {
	return b.err
}

// ScoreBatch scores every request with at most concurrency in flight. Results keep
// request order; a failing item never cancels its siblings. Requests without an ID
// get a generated one.
func (a *Scorer) ScoreBatch(ctx context.Context, reqs []Request, concurrency int) []BatchItem {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		items[i].ID = req.ID

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].setErr(err)
				return nil
			}
			result, err := a.Score(gctx, req)
			if err != nil {
				items[i].setErr(err)
				return nil
			}
			items[i].Result = result
			return nil
		})
	}

	_ = g.Wait()
	return items
}

func (b *BatchItem) setErr(err error) {
	b.err = err
	b.Error = err.Error()
	b.Usage = types.IsUsageError(err)
}
