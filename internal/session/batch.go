package session

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Workers bounds the number of concurrent runs. Zero means runtime.NumCPU().
	Workers int

	// Session options applied to every worker's Session.
	Session []Option
}

// RunBatch evaluates fetches once per feed set in batch.
//
// Each worker owns its Session. results[i] holds the fetches for batch[i].
// The first failure cancels the remaining runs and is returned with its
// batch index.
func RunBatch(ctx context.Context, batch []Feeds, fetches []graph.Node, opts BatchOptions) ([][]*tensor.Tensor, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(batch), 1))

	// Idle sessions, one per worker.
	sessions := make(chan *Session, workers)
	for range workers {
		sessions <- New(opts.Session...)
	}

	results := make([][]*tensor.Tensor, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, feeds := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s := <-sessions
			defer func() { sessions <- s }()

			out, err := s.Run(feeds, fetches)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
