package stage

import (
	"cmp"
	"reflect"

	"github.com/kbukum/seqkit/errors"
)

// cast asserts v to T. A nil element converts to the zero value of any T
// that can hold nil.
func cast[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	typ := reflect.TypeFor[T]()
	if v == nil {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return zero, nil
		}
	}
	return zero, errors.TypeMismatch(typ.String(), v)
}

// FilterOf adapts a typed predicate.
func FilterOf[T any](pred func(T) bool) Stage {
	return Filter(func(v any) (bool, error) {
		t, err := cast[T](v)
		if err != nil {
			return false, err
		}
		return pred(t), nil
	})
}

// MapOf adapts a typed mapping function.
func MapOf[T, U any](fn func(T) U) Stage {
	return Map(func(v any) (any, error) {
		t, err := cast[T](v)
		if err != nil {
			return nil, err
		}
		return fn(t), nil
	})
}

// FlatMapOf adapts a typed function returning a slice of results.
func FlatMapOf[T, U any](fn func(T) []U) Stage {
	return FlatMap(func(v any) (any, error) {
		t, err := cast[T](v)
		if err != nil {
			return nil, err
		}
		return fn(t), nil
	})
}

// ReduceOf adapts a typed reduction. op must be associative and identity
// must satisfy op(identity, x) == x for the result to be independent of the
// evaluation mode.
func ReduceOf[T any](identity T, op func(T, T) T) Stage {
	return Reduce(identity, func(a, b any) (any, error) {
		x, err := cast[T](a)
		if err != nil {
			return nil, err
		}
		y, err := cast[T](b)
		if err != nil {
			return nil, err
		}
		return op(x, y), nil
	})
}

func comparatorOf[T any](c func(a, b T) int) Comparator {
	return func(a, b any) (int, error) {
		x, err := cast[T](a)
		if err != nil {
			return 0, err
		}
		y, err := cast[T](b)
		if err != nil {
			return 0, err
		}
		return c(x, y), nil
	}
}

// SortOf adapts a typed comparator into a Sort stage.
func SortOf[T any](c func(a, b T) int) Stage { return Sort(comparatorOf(c)) }

// MinOf adapts a typed comparator into a Min stage.
func MinOf[T any](c func(a, b T) int) Stage { return Min(comparatorOf(c)) }

// MaxOf adapts a typed comparator into a Max stage.
func MaxOf[T any](c func(a, b T) int) Stage { return Max(comparatorOf(c)) }

// GroupByOf adapts a typed key function.
func GroupByOf[T any, K comparable](key func(T) K) Stage {
	return GroupBy(func(v any) (any, error) {
		t, err := cast[T](v)
		if err != nil {
			return nil, err
		}
		return key(t), nil
	})
}

// ForEachOf adapts a typed action.
func ForEachOf[T any](fn func(T)) Stage {
	return ForEach(func(v any) error {
		t, err := cast[T](v)
		if err != nil {
			return err
		}
		fn(t)
		return nil
	})
}

// Natural returns the natural ordering of an ordered type.
func Natural[T cmp.Ordered]() func(a, b T) int {
	return cmp.Compare[T]
}
