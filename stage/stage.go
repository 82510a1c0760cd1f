package stage

import (
	"github.com/kbukum/seqkit/errors"
)

// Kind identifies a stage variant. The set is closed.
type Kind int

const (
	// Intermediate stages.
	KindFilter Kind = iota + 1
	KindMap
	KindFlatMap
	KindSort

	// Terminal stages.
	KindReduce
	KindGroupBy
	KindJoin
	KindCount
	KindMin
	KindMax
	KindToSet
	KindToList
	KindForEach
)

var kindNames = map[Kind]string{
	KindFilter:  "filter",
	KindMap:     "map",
	KindFlatMap: "flatmap",
	KindSort:    "sort",
	KindReduce:  "reduce",
	KindGroupBy: "groupby",
	KindJoin:    "join",
	KindCount:   "count",
	KindMin:     "min",
	KindMax:     "max",
	KindToSet:   "toset",
	KindToList:  "tolist",
	KindForEach: "foreach",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Terminal reports whether k ends a pipeline.
func (k Kind) Terminal() bool { return k >= KindReduce && k <= KindForEach }

// Untyped stage functions. Typed constructors such as MapOf adapt ordinary
// Go functions to these shapes.
type (
	Predicate  func(any) (bool, error)
	Func       func(any) (any, error)
	Comparator func(a, b any) (int, error)
	Operator   func(a, b any) (any, error)
	Action     func(any) error
)

// Stage is one step of a pipeline. Only the fields relevant to Kind are set.
type Stage struct {
	Kind Kind

	Pred     Predicate  // Filter
	Fn       Func       // Map, FlatMap, GroupBy (key)
	Cmp      Comparator // Sort, Min, Max
	Identity any        // Reduce
	Op       Operator   // Reduce
	Sep      string     // Join
	Action   Action     // ForEach
}

// Filter keeps elements for which pred returns true.
func Filter(pred Predicate) Stage { return Stage{Kind: KindFilter, Pred: pred} }

// Map transforms every element with fn.
func Map(fn Func) Stage { return Stage{Kind: KindMap, Fn: fn} }

// FlatMap maps every element to a sub-sequence and concatenates them. fn
// must return a slice, an array, a pipeline.Iterator[any] or nil.
func FlatMap(fn Func) Stage { return Stage{Kind: KindFlatMap, Fn: fn} }

// Sort orders elements by cmp, keeping equal elements in source order.
func Sort(cmp Comparator) Stage { return Stage{Kind: KindSort, Cmp: cmp} }

// Reduce folds the sequence into one value starting from identity.
func Reduce(identity any, op Operator) Stage {
	return Stage{Kind: KindReduce, Identity: identity, Op: op}
}

// GroupBy groups elements by the key fn returns.
func GroupBy(key Func) Stage { return Stage{Kind: KindGroupBy, Fn: key} }

// Join concatenates the string form of every element, separated by sep.
func Join(sep string) Stage { return Stage{Kind: KindJoin, Sep: sep} }

// Count counts elements.
func Count() Stage { return Stage{Kind: KindCount} }

// Min selects the smallest element by cmp.
func Min(cmp Comparator) Stage { return Stage{Kind: KindMin, Cmp: cmp} }

// Max selects the largest element by cmp.
func Max(cmp Comparator) Stage { return Stage{Kind: KindMax, Cmp: cmp} }

// ToSet collects the distinct elements.
func ToSet() Stage { return Stage{Kind: KindToSet} }

// ToList collects every element in order.
func ToList() Stage { return Stage{Kind: KindToList} }

// ForEach calls action for every element.
func ForEach(action Action) Stage { return Stage{Kind: KindForEach, Action: action} }

// validate checks that the fields required by s.Kind are present.
func (s Stage) validate(index int) error {
	missing := func(field string) error {
		return errors.InvalidPipeline(index, s.Kind.String()+" stage has no "+field)
	}
	switch s.Kind {
	case KindFilter:
		if s.Pred == nil {
			return missing("predicate")
		}
	case KindMap, KindFlatMap:
		if s.Fn == nil {
			return missing("function")
		}
	case KindGroupBy:
		if s.Fn == nil {
			return missing("key function")
		}
	case KindSort, KindMin, KindMax:
		if s.Cmp == nil {
			return missing("comparator")
		}
	case KindReduce:
		if s.Op == nil {
			return missing("operator")
		}
	case KindForEach:
		if s.Action == nil {
			return missing("action")
		}
	case KindJoin, KindCount, KindToSet, KindToList:
	default:
		return errors.InvalidPipeline(index, "unknown stage kind")
	}
	return nil
}

// Pipeline is a named, ordered list of stages. At most one stage may be
// terminal and it must come last; without one the pipeline ends in ToList.
type Pipeline struct {
	Name   string
	Stages []Stage
}

// New creates a pipeline.
func New(name string, stages ...Stage) Pipeline {
	return Pipeline{Name: name, Stages: stages}
}

// Validate reports the first structural problem in p as an INVALID_PIPELINE error.
func (p Pipeline) Validate() error {
	for i, s := range p.Stages {
		if err := s.validate(i); err != nil {
			return err
		}
		if s.Kind.Terminal() && i != len(p.Stages)-1 {
			return errors.InvalidPipeline(i, "terminal stage "+s.Kind.String()+" must be last")
		}
	}
	return nil
}

// split returns the intermediate stages and the terminal stage, supplying
// ToList when the pipeline has none.
func (p Pipeline) split() ([]Stage, Stage) {
	if n := len(p.Stages); n > 0 && p.Stages[n-1].Kind.Terminal() {
		return p.Stages[:n-1], p.Stages[n-1]
	}
	return p.Stages, ToList()
}
