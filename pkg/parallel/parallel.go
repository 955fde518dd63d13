// Package parallel runs independent named lookups concurrently and joins their
// results.
package parallel

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Lookup is one independent query. It should stop early when ctx is
// cancelled.
type Lookup func(ctx context.Context) (any, error)

// Results maps each lookup's label to its value.
type Results map[string]any

// Run dispatches every lookup at once and waits for all of them. The first
// failure cancels the context handed to the others and is returned on its own;
// partial results are dropped.
func Run(ctx context.Context, lookups map[string]Lookup) (Results, error) {
	labels := make([]string, 0, len(lookups))
	for label := range lookups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	// Each goroutine owns one slot, so no locking is needed.
	values := make([]any, len(labels))

	g, gctx := errgroup.WithContext(ctx)
	for i, label := range labels {
		lookup := lookups[label]
		g.Go(func() error {
			v, err := lookup(gctx)
			if err != nil {
				return errors.WithStack(err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(Results, len(labels))
	for i, label := range labels {
		results[label] = values[i]
	}
	return results, nil
}

// Get returns the value stored under label as a T, or T's zero value when the
// label is missing or holds another type.
func Get[T any](r Results, label string) T {
	v, _ := r[label].(T)
	return v
}
