package grammar

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ava12/dynparse/iterator"
	"github.com/ava12/dynparse/match"
)

// Run pairs one Iterator with the per-run user data ParseAll should thread
// through its Context.
type Run struct {
	Iter     *iterator.Iterator
	UserData interface{}
}

// ParseAll parses every run against g concurrently, each with its own
// Context and run id, and returns one match tree per run in the same
// order as runs. g.Prepare is called once up front so concurrent calls
// never race on id assignment.
//
// If any run's callback aborts (Parse returns a non-nil error), ParseAll
// cancels the remaining runs via ctx and returns the first such error;
// results for runs that had already completed are discarded.
func ParseAll(ctx context.Context, g *Grammar, runs []Run) ([]*match.Match, error) {
	if !g.prepared {
		if err := g.Prepare(); err != nil {
			return nil, err
		}
	}

	results := make([]*match.Match, len(runs))
	grp, gctx := errgroup.WithContext(ctx)

	for i, run := range runs {
		i, run := i, run
		grp.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			m, err := Parse(g, run.Iter, run.UserData)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		for _, m := range results {
			match.Free(m)
		}
		return nil, err
	}

	return results, nil
}
