package stage

// ResultKind identifies the shape of a Result.
type ResultKind int

const (
	// ResultSequence is an ordered list of elements (ToList, or no terminal).
	ResultSequence ResultKind = iota
	// ResultScalar is a single value (Reduce, Count, Join, Min, Max).
	ResultScalar
	// ResultMapping is a key to group mapping (GroupBy).
	ResultMapping
	// ResultSet is a collection of distinct elements (ToSet).
	ResultSet
	// ResultNone carries no value (ForEach).
	ResultNone
)

func (k ResultKind) String() string {
	switch k {
	case ResultSequence:
		return "sequence"
	case ResultScalar:
		return "scalar"
	case ResultMapping:
		return "mapping"
	case ResultSet:
		return "set"
	case ResultNone:
		return "none"
	default:
		return "unknown"
	}
}

// Result is the outcome of evaluating a pipeline.
type Result struct {
	Kind ResultKind

	// Items holds the elements of a sequence or set. Set order is
	// first-seen order.
	Items []any

	// Value holds a scalar. Present is false when a Min or Max ran over an
	// empty sequence.
	Value   any
	Present bool

	// Groups maps each key to its elements in source order; Keys lists the
	// keys in the order they were first seen.
	Groups map[any][]any
	Keys   []any
}

// OrElse returns the scalar value, or def when it is absent.
func (r Result) OrElse(def any) any {
	if r.Kind == ResultScalar && r.Present {
		return r.Value
	}
	return def
}

// WithDefault returns r with an absent scalar replaced by def.
func (r Result) WithDefault(def any) Result {
	if r.Kind == ResultScalar && !r.Present {
		return scalar(def)
	}
	return r
}

// Len returns the number of items, groups, or 1 for a present scalar.
func (r Result) Len() int {
	switch r.Kind {
	case ResultSequence, ResultSet:
		return len(r.Items)
	case ResultMapping:
		return len(r.Keys)
	case ResultScalar:
		if r.Present {
			return 1
		}
	}
	return 0
}

// Entry is one group of a mapping result.
type Entry struct {
	Key    any
	Values []any
}

// Entries returns the groups of a mapping in first-seen key order, ready to
// be used as the source of another evaluation.
func (r Result) Entries() []Entry {
	entries := make([]Entry, 0, len(r.Keys))
	for _, k := range r.Keys {
		entries = append(entries, Entry{Key: k, Values: r.Groups[k]})
	}
	return entries
}

// EntrySource returns Entries as an untyped source slice.
func (r Result) EntrySource() []any {
	src := make([]any, 0, len(r.Keys))
	for _, e := range r.Entries() {
		src = append(src, e)
	}
	return src
}

func sequence(items []any) Result { return Result{Kind: ResultSequence, Items: items} }

func scalar(v any) Result { return Result{Kind: ResultScalar, Value: v, Present: true} }

func absent() Result { return Result{Kind: ResultScalar} }
