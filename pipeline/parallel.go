package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic is wrapped by the error returned when a reduce worker panics.
var ErrWorkerPanic = errors.New("pipeline: reduce worker panicked")

// ParallelOptions tunes ParallelReduce.
type ParallelOptions struct {
	// Workers caps the number of concurrently folding partitions.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
	// PartitionSize is the number of elements per partition.
	// Zero means ceil(len(items) / Workers).
	PartitionSize int
}

// Range is a half-open index interval [Low, High).
type Range struct {
	Low, High int
}

// Len returns the number of indexes in r.
func (r Range) Len() int { return r.High - r.Low }

// Partition splits [0, n) into consecutive disjoint ranges of at most size
// elements that together cover every index exactly once.
func Partition(n, size int) []Range {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	parts := make([]Range, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		parts = append(parts, Range{Low: lo, High: min(lo+size, n)})
	}
	return parts
}

// ParallelReduce folds items with op by splitting them into partitions that
// are reduced concurrently, each starting from identity, and then combining
// the partial results with op.
//
// op must be associative and identity must be a true identity for op. Partial
// results are combined in the order their partitions finish, so the result is
// only deterministic when op is also order-independent (commutative).
func ParallelReduce[T any](ctx context.Context, items []T, identity T, op func(T, T) T, opts ParallelOptions) (T, error) {
	return TryParallelReduce(ctx, items, identity, func(a, b T) (T, error) { return op(a, b), nil }, opts)
}

// TryParallelReduce is ParallelReduce with an operator that can fail. The
// first error cancels the remaining partitions.
func TryParallelReduce[T any](ctx context.Context, items []T, identity T, op func(T, T) (T, error), opts ParallelOptions) (T, error) {
	if len(items) == 0 {
		return identity, ctx.Err()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := opts.PartitionSize
	if size <= 0 {
		size = (len(items) + workers - 1) / workers
	}
	parts := Partition(len(items), size)

	partials := make(chan T, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rg := range parts {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("%w: %v", ErrWorkerPanic, rec)
				}
			}()
			acc := identity
			for _, v := range items[rg.Low:rg.High] {
				if err := gctx.Err(); err != nil {
					return err
				}
				if acc, err = op(acc, v); err != nil {
					return err
				}
			}
			partials <- acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return identity, err
	}
	close(partials)

	result := identity
	for partial := range partials {
		var err error
		if result, err = safeCombine(op, result, partial); err != nil {
			return identity, err
		}
	}
	return result, nil
}

func safeCombine[T any](op func(T, T) (T, error), a, b T) (out T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, rec)
		}
	}()
	return op(a, b)
}
