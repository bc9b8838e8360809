package split

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// estimatePool dispatches token counting across a bounded set of workers.
// One pool is created per token-mode split and released exactly once, on
// both success and failure paths. After Close every call fails.
type estimatePool struct {
	counter TokenCounter
	workers int
	closed  bool
}

func newEstimatePool(counter TokenCounter, workers int) *estimatePool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &estimatePool{counter: counter, workers: workers}
}

// CountAll counts every file concurrently and returns results keyed by path.
// Completion order is irrelevant; any single failure fails the whole batch.
func (p *estimatePool) CountAll(ctx context.Context, files []File) (map[string]int, error) {
	if p.closed {
		return nil, ErrPoolClosed
	}

	results := make([]int, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			n, err := p.counter.Count(gctx, f.Content)
			if err != nil {
				return fmt.Errorf("count tokens of %s: %w", f.Path, err)
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(files))
	for i, f := range files {
		counts[f.Path] = results[i]
	}
	return counts, nil
}

// Count counts one text synchronously, used for exact per-part verification.
func (p *estimatePool) Count(ctx context.Context, text string) (int, error) {
	if p.closed {
		return 0, ErrPoolClosed
	}
	return p.counter.Count(ctx, text)
}

// Close releases the pool. Safe to call once; further use returns ErrPoolClosed.
func (p *estimatePool) Close() {
	p.closed = true
}
