package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	statsengine "gofigure/adapters/stats/engine"
	"gofigure/domain/stats"
	"gofigure/internal"
)

// BatchService runs many independent analyses concurrently. The engine is
// stateless, so each dataset is a pure unit of work; result order matches
// input order.
type BatchService struct {
	engine  *statsengine.Engine
	workers int
	logger  *internal.Logger
}

// BatchItem is one dataset in a batch run
type BatchItem struct {
	Name    string
	Request statsengine.Request
}

// NewBatchService creates a batch service with the given worker limit
func NewBatchService(engine *statsengine.Engine, workers int, logger *internal.Logger) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{engine: engine, workers: workers, logger: logger}
}

// RunAll analyzes every item, at most workers at a time. Cancellation stops
// unstarted work; completed slots keep their results.
func (s *BatchService) RunAll(ctx context.Context, items []BatchItem) ([]stats.StatsResult, error) {
	out := make([]stats.StatsResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.engine.Run(item.Request)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	s.logger.Debug("batch complete: %d datasets", len(items))
	return out, nil
}
