package automation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
)

// RunAll solves every configuration on at most workers goroutines and
// returns the results in input order. workers <= 0 uses GOMAXPROCS. The
// first failure cancels the runs that have not finished.
func RunAll(ctx context.Context, cfgs []*config.Config, workers int) ([]*dynamo.Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*dynamo.Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			result, err := experiment.Simulate(ctx, cfg)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
