// Package stage evaluates declarative pipelines: an ordered list of stage
// descriptors applied to an in-memory source.
//
// A Stage is a tagged value from a closed set of kinds. Filter, Map, FlatMap
// and Sort are intermediate; Reduce, GroupBy, Join, Count, Min, Max, ToSet,
// ToList and ForEach are terminal. A pipeline holds at most one terminal
// stage, as its last element, and ends in ToList when it has none.
//
// Stage functions are untyped. The typed constructors (FilterOf, MapOf,
// ReduceOf, ...) adapt ordinary Go functions and report an element of the
// wrong dynamic type as a TYPE_MISMATCH error.
//
//	ev := stage.NewEvaluator()
//	res, err := ev.Evaluate(ctx, stage.Source(10, 15, 20, 25), stage.New("even-numbers",
//		stage.FilterOf(func(n int) bool { return n%2 == 0 }),
//	))
//	// res.Items == []any{10, 20}
//
// In ModeParallel, Reduce stages fold disjoint partitions concurrently and
// combine the partial results in completion order. The operator must be
// associative and the identity a true identity; for a deterministic result
// the operator must also be commutative.
package stage
