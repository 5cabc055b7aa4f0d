package finder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FindAllBatch scans texts concurrently against the same automaton, using at
// most workers goroutines (unbounded when workers <= 0). Results are aligned
// with texts. The first failing text cancels the remaining work.
func (f *Finder) FindAllBatch(ctx context.Context, texts []string, resolveLongest bool, workers int) ([][]Match, error) {
	results := make([][]Match, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, err := f.FindAll(text, resolveLongest)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
