// Package showcase holds the demo pipelines run by seqdemo. Each example
// builds a stage list over a fixed source and evaluates it.
package showcase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/stage"
)

// Example is one named demo pipeline. Run writes any per-element output
// (ForEach) to out and returns the terminal result.
type Example struct {
	Name  string
	Title string
	Run   func(ctx context.Context, ev *stage.Evaluator, out io.Writer) (stage.Result, error)
}

var (
	names     = stage.Source("Alice", "Bob", "Anna", "Charlie")
	fruits    = stage.Source("Apple", "Banana", "Apple", "Orange", "Banana")
	countries = stage.Source("USA", "Canada", "India", "UK")
	scores    = stage.Source(55, 89, 76, 45, 92)
	animals   = stage.Source("Dog", "Cat", "Elephant", "Cow", "Deer")
)

// Catalog returns the examples in presentation order.
func Catalog() []Example {
	return []Example{
		{
			Name:  "starts-with-a",
			Title: "Names starting with A",
			Run: func(ctx context.Context, ev *stage.Evaluator, out io.Writer) (stage.Result, error) {
				return ev.Evaluate(ctx, names, stage.New("starts-with-a",
					stage.FilterOf(func(s string) bool { return strings.HasPrefix(s, "A") }),
					stage.ForEachOf(func(s string) { fmt.Fprintln(out, s) }),
				))
			},
		},
		{
			Name:  "parallel-sum",
			Title: "Parallel sum",
			Run: func(ctx context.Context, ev *stage.Evaluator, _ io.Writer) (stage.Result, error) {
				return ev.InMode(stage.ModeParallel).Evaluate(ctx, stage.Source(1, 2, 3, 4, 5), stage.New("parallel-sum",
					stage.ReduceOf(0, func(a, b int) int { return a + b }),
				))
			},
		},
		{
			Name:  "even-numbers",
			Title: "Even numbers",
			Run: evaluate(stage.Source(10, 15, 20, 25), "even-numbers",
				stage.FilterOf(func(n int) bool { return n%2 == 0 }),
				stage.ToList(),
			),
		},
		{
			Name:  "sorted-names",
			Title: "Sorted names",
			Run: evaluate(stage.Source("John", "Alice", "Zara", "Michael", "Bob"), "sorted-names",
				stage.SortOf(stage.Natural[string]()),
				stage.ToList(),
			),
		},
		{
			Name:  "upper-case",
			Title: "Upper-case names",
			Run: evaluate(names, "upper-case",
				stage.MapOf(strings.ToUpper),
				stage.ToList(),
			),
		},
		{
			Name:  "duplicates",
			Title: "Duplicate items",
			Run:   duplicates,
		},
		{
			Name:  "join-countries",
			Title: "Joined countries",
			Run:   evaluate(countries, "join-countries", stage.Join(", ")),
		},
		{
			Name:  "count-long-names",
			Title: "Names longer than three letters",
			Run: evaluate(names, "count-long-names",
				stage.FilterOf(func(s string) bool { return len(s) > 3 }),
				stage.Count(),
			),
		},
		{
			Name:  "max-score",
			Title: "Highest score",
			Run:   withDefault(-1, evaluate(scores, "max-score", stage.MaxOf(stage.Natural[int]()))),
		},
		{
			Name:  "min-score",
			Title: "Lowest score",
			Run:   withDefault(-1, evaluate(scores, "min-score", stage.MinOf(stage.Natural[int]()))),
		},
		{
			Name:  "group-by-length",
			Title: "Animals grouped by name length",
			Run: evaluate(animals, "group-by-length",
				stage.GroupByOf(func(s string) int { return len(s) }),
			),
		},
		{
			Name:  "flatten",
			Title: "Flattened nested lists",
			Run: evaluate(stage.Source([]int{1, 2, 3}, []int{4, 5}, []int{6, 7, 8}), "flatten",
				stage.FlatMapOf(func(xs []int) []int { return xs }),
				stage.ToList(),
			),
		},
	}
}

// Names returns the example names in catalogue order.
func Names() []string {
	catalog := Catalog()
	out := make([]string, len(catalog))
	for i, ex := range catalog {
		out[i] = ex.Name
	}
	return out
}

// Lookup finds an example by name.
func Lookup(name string) (Example, error) {
	for _, ex := range Catalog() {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Example{}, errors.NotFound("example", name)
}

type runFunc = func(ctx context.Context, ev *stage.Evaluator, out io.Writer) (stage.Result, error)

func evaluate(source []any, name string, stages ...stage.Stage) runFunc {
	p := stage.New(name, stages...)
	return func(ctx context.Context, ev *stage.Evaluator, _ io.Writer) (stage.Result, error) {
		return ev.Evaluate(ctx, source, p)
	}
}

func withDefault(def any, run runFunc) runFunc {
	return func(ctx context.Context, ev *stage.Evaluator, out io.Writer) (stage.Result, error) {
		res, err := run(ctx, ev, out)
		if err != nil {
			return stage.Result{}, err
		}
		return res.WithDefault(def), nil
	}
}

// duplicates groups the items by identity, then re-streams the groups to
// keep the keys that occur more than once.
func duplicates(ctx context.Context, ev *stage.Evaluator, _ io.Writer) (stage.Result, error) {
	grouped, err := ev.Evaluate(ctx, fruits, stage.New("duplicates.group",
		stage.GroupBy(func(v any) (any, error) { return v, nil }),
	))
	if err != nil {
		return stage.Result{}, err
	}
	return ev.Evaluate(ctx, grouped.EntrySource(), stage.New("duplicates",
		stage.FilterOf(func(e stage.Entry) bool { return len(e.Values) > 1 }),
		stage.MapOf(func(e stage.Entry) any { return e.Key }),
		stage.ToSet(),
	))
}
