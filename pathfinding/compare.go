package pathfinding

import (
	"context"

	"github.com/beka-birhanu/maze-runner/maze"
	"golang.org/x/sync/errgroup"
)

// Compare runs the given algorithms concurrently on the same graph and
// returns their results in the order requested. With no algorithms it
// runs all of them. The first failure cancels the remaining searches.
func Compare(ctx context.Context, g Graph, start, goal maze.Position, algos ...Algorithm) ([]Result, error) {
	if len(algos) == 0 {
		algos = Algorithms
	}

	results := make([]Result, len(algos))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, algo := range algos {
		i, algo := i, algo
		eg.Go(func() error {
			res, err := Search(egCtx, g, algo, start, goal)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
