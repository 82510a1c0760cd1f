package pipeline

import (
	"context"
	"strings"
)

// Count runs the pipeline and returns the number of values it yields.
func Count[T any](ctx context.Context, p *Pipeline[T]) (int64, error) {
	var n int64
	err := ForEach(ctx, p, func(_ context.Context, _ T) error {
		n++
		return nil
	})
	return n, err
}

// Fold runs the pipeline and left-folds every value into init.
func Fold[T, R any](ctx context.Context, p *Pipeline[T], init R, fn func(R, T) (R, error)) (R, error) {
	acc := init
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		var err error
		acc, err = fn(acc, v)
		return err
	})
	return acc, err
}

// Min returns the smallest value according to cmp, or an empty Optional when
// the pipeline yields nothing. On ties the first value encountered wins.
func Min[T any](ctx context.Context, p *Pipeline[T], cmp func(a, b T) int) (Optional[T], error) {
	return TryMin(ctx, p, func(a, b T) (int, error) { return cmp(a, b), nil })
}

// TryMin is Min with a comparator that can fail.
func TryMin[T any](ctx context.Context, p *Pipeline[T], cmp func(a, b T) (int, error)) (Optional[T], error) {
	return extreme(ctx, p, cmp, func(c int) bool { return c < 0 })
}

// Max returns the largest value according to cmp, or an empty Optional when
// the pipeline yields nothing. On ties the first value encountered wins.
func Max[T any](ctx context.Context, p *Pipeline[T], cmp func(a, b T) int) (Optional[T], error) {
	return TryMax(ctx, p, func(a, b T) (int, error) { return cmp(a, b), nil })
}

// TryMax is Max with a comparator that can fail.
func TryMax[T any](ctx context.Context, p *Pipeline[T], cmp func(a, b T) (int, error)) (Optional[T], error) {
	return extreme(ctx, p, cmp, func(c int) bool { return c > 0 })
}

// extreme keeps the current best and replaces it only when better(cmp(v, best))
// holds, so equal values never displace an earlier one.
func extreme[T any](ctx context.Context, p *Pipeline[T], cmp func(a, b T) (int, error), better func(int) bool) (Optional[T], error) {
	best := None[T]()
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		cur, ok := best.Get()
		if !ok {
			best = Some(v)
			return nil
		}
		c, err := cmp(v, cur)
		if err != nil {
			return err
		}
		if better(c) {
			best = Some(v)
		}
		return nil
	})
	if err != nil {
		return None[T](), err
	}
	return best, nil
}

// Join concatenates the strings yielded by p, separated by sep.
// An empty pipeline yields "".
func Join(ctx context.Context, p *Pipeline[string], sep string) (string, error) {
	var b strings.Builder
	first := true
	err := ForEach(ctx, p, func(_ context.Context, s string) error {
		if !first {
			b.WriteString(sep)
		}
		first = false
		b.WriteString(s)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Groups is the result of GroupBy. Keys lists every key in the order it was
// first seen; Values holds each group in source order.
type Groups[K comparable, T any] struct {
	Keys   []K
	Values map[K][]T
}

// Len returns the number of groups.
func (g Groups[K, T]) Len() int { return len(g.Keys) }

// GroupBy partitions the values of p by key.
func GroupBy[T any, K comparable](ctx context.Context, p *Pipeline[T], key func(T) K) (Groups[K, T], error) {
	return TryGroupBy(ctx, p, func(v T) (K, error) { return key(v), nil })
}

// TryGroupBy is GroupBy with a key function that can fail.
func TryGroupBy[T any, K comparable](ctx context.Context, p *Pipeline[T], key func(T) (K, error)) (Groups[K, T], error) {
	g := Groups[K, T]{Keys: make([]K, 0), Values: make(map[K][]T)}
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		k, err := key(v)
		if err != nil {
			return err
		}
		if _, seen := g.Values[k]; !seen {
			g.Keys = append(g.Keys, k)
		}
		g.Values[k] = append(g.Values[k], v)
		return nil
	})
	if err != nil {
		return Groups[K, T]{}, err
	}
	return g, nil
}

// ToSet returns the distinct values of p in first-seen order.
func ToSet[T comparable](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	seen := make(map[T]struct{})
	out := make([]T, 0)
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		if _, ok := seen[v]; ok {
			return nil
		}
		seen[v] = struct{}{}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToSetFunc deduplicates values that are not comparable with ==. Values are
// bucketed by hash and compared within a bucket with equal. The result keeps
// first-seen order.
func ToSetFunc[T any](ctx context.Context, p *Pipeline[T], hash func(T) uint64, equal func(a, b T) bool) ([]T, error) {
	buckets := make(map[uint64][]T)
	out := make([]T, 0)
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		h := hash(v)
		for _, other := range buckets[h] {
			if equal(v, other) {
				return nil
			}
		}
		buckets[h] = append(buckets[h], v)
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
