package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tatianab/monty-hall/internal/models"
)

// cancelCheckInterval is how many trials a worker runs between context checks.
const cancelCheckInterval = 1024

// Observer is told about every batch that completes.
type Observer interface {
	RecordBatch(mode models.HostMode, strategy models.Strategy, t models.Tally)
}

type batchOptions struct {
	observers []Observer
}

type BatchOption func(*batchOptions)

// WithObserver registers an observer for the finished tally. A nil observer is ignored.
func WithObserver(o Observer) BatchOption {
	return func(opts *batchOptions) {
		if o != nil {
			opts.observers = append(opts.observers, o)
		}
	}
}

func validateBatch(mode models.HostMode, strategy models.Strategy, n int) error {
	if n < 1 {
		return fmt.Errorf("run batch with %d games: %w", n, ErrInvalidCount)
	}
	if !mode.Valid() {
		return fmt.Errorf("run batch with mode %d: %w", int(mode), ErrUnknownMode)
	}
	if !strategy.Valid() {
		return fmt.Errorf("run batch with strategy %d: %w", int(strategy), ErrUnknownStrategy)
	}
	return nil
}

// RunBatch plays n trials and tallies them. The configuration is checked
// before any trial runs; a valid batch always tallies exactly n games.
func RunBatch(mode models.HostMode, strategy models.Strategy, n int, rng Rand, opts ...BatchOption) (models.Tally, error) {
	if err := validateBatch(mode, strategy, n); err != nil {
		return models.Tally{}, err
	}
	var t models.Tally
	for range n {
		t.Add(RunTrial(mode, strategy, rng))
	}
	notify(mode, strategy, t, opts)
	return t, nil
}

// RunBatchParallel splits n trials across workers. Each worker draws from its
// own PCG stream derived from seed and keeps a private tally; the tallies are
// summed once every worker is done, so a seed replays the same result for the
// same worker count. A cancelled context aborts the whole batch.
func RunBatchParallel(ctx context.Context, mode models.HostMode, strategy models.Strategy, n, workers int, seed uint64, opts ...BatchOption) (models.Tally, error) {
	if err := validateBatch(mode, strategy, n); err != nil {
		return models.Tally{}, err
	}
	if workers < 1 {
		return models.Tally{}, fmt.Errorf("run batch with %d workers: %w", workers, ErrInvalidWorkers)
	}
	if workers > n {
		workers = n
	}

	partials := make([]models.Tally, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		count := n / workers
		if w < n%workers {
			count++
		}
		g.Go(func() error {
			rng := newStream(seed, w)
			var t models.Tally
			for i := range count {
				if i%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				t.Add(RunTrial(mode, strategy, rng))
			}
			partials[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Tally{}, fmt.Errorf("run batch: %w", err)
	}

	var total models.Tally
	for _, t := range partials {
		total = total.Merge(t)
	}
	notify(mode, strategy, total, opts)
	return total, nil
}

func notify(mode models.HostMode, strategy models.Strategy, t models.Tally, opts []BatchOption) {
	var o batchOptions
	for _, opt := range opts {
		opt(&o)
	}
	for _, obs := range o.observers {
		obs.RecordBatch(mode, strategy, t)
	}
}
