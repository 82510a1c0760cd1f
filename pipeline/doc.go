// Package pipeline provides composable, pull-based operators over in-memory
// sequences.
//
// Pipelines are lazy: no work happens until values are pulled by a terminal
// such as Collect, Count, Min, Join or GroupBy. Each stage pulls from the
// previous stage on demand, and every call to a terminal creates fresh
// iterators, so a pipeline value can be evaluated any number of times.
//
// # Operators
//
// Intermediate (lazy):
//
//   - Map, FlatMap: transform each value, or each value into many
//   - Filter, TryFilter: keep values matching a predicate
//   - Sorted, TrySorted: stable sort (materialises on first pull)
//   - Tap: side-effect without altering the value
//   - Reduce, TryReduce: fold everything into a single emitted value
//
// Terminals:
//
//   - Collect, Drain, ForEach
//   - Count, Fold
//   - Min, Max (absent on empty input, see Optional)
//   - Join, GroupBy, ToSet, ToSetFunc
//
// Fork-join:
//
//   - ParallelReduce, TryParallelReduce split a slice into disjoint
//     partitions, fold them concurrently and combine the partial results.
//
// # Usage
//
//	src := pipeline.FromSlice([]int{10, 15, 20, 25})
//	evens := pipeline.Filter(src, func(n int) bool { return n%2 == 0 })
//	got, _ := pipeline.Collect(ctx, evens) // [10 20]
package pipeline
